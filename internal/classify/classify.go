package classify

import (
	"path"
	"regexp"
	"strings"
)

var (
	reSchemaContent = regexp.MustCompile(`(?m)^\s*datasource\s+\w+\s*\{|mongoose\.Schema|sequelize\.define\s*\(|createTable\s*\(|pgTable\s*\(|sqliteTable\s*\(`)
	reRouteContent  = regexp.MustCompile(`\b(?:router|app|fastify)\.(?:get|post|put|patch|delete|use)\s*\(|export\s+(?:default\s+)?(?:async\s+)?function\s+handler\b|export\s+(?:const|async\s+function)\s+(?:GET|POST|PUT|PATCH|DELETE)\b`)
	reHookName      = regexp.MustCompile(`^use[A-Z]\w*$`)
	reJSXReturn     = regexp.MustCompile(`return\s*\(?\s*<[A-Za-z]`)
	reExportFunc    = regexp.MustCompile(`export\s+default\s+function\b|export\s+function\s+[A-Z]\w*\s*\(`)
	reTypeOnly      = regexp.MustCompile(`export\s+(?:interface|type)\s+\w+`)
	reFuncDecl      = regexp.MustCompile(`\bfunction\s+\w+|=>`)
	reClassDecl     = regexp.MustCompile(`export\s+(?:default\s+)?(?:abstract\s+)?class\s+\w+`)
	reAsyncFunc     = regexp.MustCompile(`export\s+(?:default\s+)?async\s+function\b`)
)

// Classify maps a repo-relative path and its content to a Category.
// Pure and deterministic: predicates run in the fixed order of Categories and
// the first hit wins, so a schema-directory file that only declares types is
// still Schema, never Type.
func Classify(relPath, content string) Category {
	p := strings.ToLower(path.Clean(strings.ReplaceAll(relPath, "\\", "/")))
	base := path.Base(relPath)
	stem := strings.TrimSuffix(base, path.Ext(base))
	ext := strings.ToLower(path.Ext(p))

	switch {
	case isSchema(p, content):
		return Schema
	case isRouter(p, content):
		return Router
	case isHook(p, stem):
		return Hook
	case isComponent(p, ext, content):
		return Component
	case isType(p, content):
		return Type
	case isConfig(p, base):
		return Config
	case isService(p, content):
		return Service
	case isUtil(p):
		return Util
	case isTest(p):
		return Test
	}
	return Other
}

func isSchema(p, content string) bool {
	if hasDir(p, "schema", "schemas", "model", "models", "prisma") {
		return true
	}
	base := path.Base(p)
	if base == "schema.ts" || base == "schema.js" || strings.HasSuffix(base, ".prisma") || strings.HasSuffix(base, ".sql") {
		return true
	}
	return reSchemaContent.MatchString(content)
}

func isRouter(p, content string) bool {
	if hasDir(p, "api", "routes", "route", "controllers") {
		return true
	}
	base := path.Base(p)
	if strings.Contains(base, ".routes.") || strings.Contains(base, ".controller.") {
		return true
	}
	return reRouteContent.MatchString(content)
}

// isHook matches hooks directories and the use<Capitalized> naming
// convention. The name check runs on the original-case stem; "usefoo.ts" is
// not a hook.
func isHook(p, stem string) bool {
	if hasDir(p, "hooks") {
		return true
	}
	return reHookName.MatchString(stem)
}

func isComponent(p, ext, content string) bool {
	switch ext {
	case ".tsx", ".jsx", ".vue", ".svelte":
		return true
	}
	if hasDir(p, "components", "component", "pages", "views") {
		return true
	}
	return reExportFunc.MatchString(content) && reJSXReturn.MatchString(content)
}

func isType(p, content string) bool {
	if hasDir(p, "types", "type", "interfaces", "@types") || strings.HasSuffix(p, ".d.ts") {
		return true
	}
	return reTypeOnly.MatchString(content) && !reFuncDecl.MatchString(content)
}

func isConfig(p, base string) bool {
	if hasDir(p, "config", "configs", "env") {
		return true
	}
	lower := strings.ToLower(base)
	return strings.Contains(lower, ".config.") || strings.HasPrefix(lower, ".env") || strings.HasSuffix(lower, "rc.js") || strings.HasSuffix(lower, "rc.json")
}

func isService(p, content string) bool {
	if hasDir(p, "services", "service", "lib") {
		return true
	}
	return reClassDecl.MatchString(content) || reAsyncFunc.MatchString(content)
}

func isUtil(p string) bool {
	return hasDir(p, "utils", "util", "helpers", "helper")
}

func isTest(p string) bool {
	if hasDir(p, "__tests__", "test", "tests", "spec") {
		return true
	}
	base := path.Base(p)
	return strings.Contains(base, ".test.") || strings.Contains(base, ".spec.")
}

// hasDir reports whether any path segment except the last equals one of names.
func hasDir(p string, names ...string) bool {
	segs := strings.Split(p, "/")
	if len(segs) < 2 {
		return false
	}
	for _, seg := range segs[:len(segs)-1] {
		for _, n := range names {
			if seg == n {
				return true
			}
		}
	}
	return false
}
