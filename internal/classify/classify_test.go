package classify

import "testing"

func TestClassify_Table(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		content string
		want    Category
	}{
		{"prisma schema by path", "prisma/schema.prisma", "", Schema},
		{"schema dir wins over type content", "src/schema/foo.ts", "export interface Foo { id: string }", Schema},
		{"drizzle table content", "src/db/users.ts", "export const users = pgTable(\"users\", {})", Schema},
		{"api dir", "src/api/users.ts", "", Router},
		{"express registration", "src/server.ts", "app.get('/health', handler)", Router},
		{"nextjs handler export", "src/pages-handler.ts", "export default async function handler(req, res) {}", Router},
		{"hooks dir", "src/hooks/useAuth.ts", "", Hook},
		{"hook naming convention", "src/state/useCounter.ts", "", Hook},
		{"lowercase use is not a hook", "src/state/usefoo.ts", "", Other},
		{"tsx extension", "src/widgets/Button.tsx", "", Component},
		{"components dir", "src/components/Nav.js", "", Component},
		{"default export with jsx", "src/App.js", "export default function App() { return <div/> }", Component},
		{"dts file", "src/global.d.ts", "", Type},
		{"type-only content", "src/shared.ts", "export interface User { id: string }", Type},
		{"types with functions is not type", "src/shared2.ts", "export interface U {}\nexport function f() {}", Other},
		{"config dir", "config/database.ts", "", Config},
		{"config suffix", "src/vite.config.ts", "", Config},
		{"env file", ".env.local", "", Config},
		{"services dir", "src/services/mailer.ts", "", Service},
		{"exported class", "src/mailer.ts", "export class Mailer {}", Service},
		{"async function", "src/fetcher.ts", "export async function fetchAll() {}", Service},
		{"utils dir", "src/utils/math.ts", "", Util},
		{"test suffix", "src/math.test.ts", "", Test},
		{"tests dir", "src/__tests__/math.ts", "", Test},
		{"plain file", "src/index.ts", "const x = 1", Other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.path, tc.content); got != tc.want {
				t.Fatalf("Classify(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	const path = "src/schema/user.ts"
	const content = "export interface User { id: string }"
	first := Classify(path, content)
	for i := 0; i < 50; i++ {
		if got := Classify(path, content); got != first {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestCategory_WireNamesRoundTrip(t *testing.T) {
	for _, c := range Categories {
		if got := ParseCategory(c.String()); got != c {
			t.Fatalf("ParseCategory(%q) = %v, want %v", c.String(), got, c)
		}
	}
	if got := ParseCategory("banana"); got != Other {
		t.Fatalf("unknown name parsed to %v, want Other", got)
	}
}
