package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"text/template"

	"github.com/moasq/rnmodule/internal/options"
)

//go:embed files
var filesFS embed.FS

var (
	parseMu sync.Mutex
	cache   = map[string]*template.Template{}
)

var funcs = template.FuncMap{
	"json": jsonString,
}

// jsonString quotes s as a JSON string literal, leaving HTML characters as-is.
func jsonString(s string) (string, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// parsed returns the compiled template for an embedded source file.
func parsed(source string) (*template.Template, error) {
	parseMu.Lock()
	defer parseMu.Unlock()
	if t, ok := cache[source]; ok {
		return t, nil
	}
	body, err := filesFS.ReadFile(path.Join("files", source))
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", source, err)
	}
	t, err := template.New(source).Funcs(funcs).Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", source, err)
	}
	cache[source] = t
	return t, nil
}

func fixed(p string) func(Context) PathResult {
	return func(Context) PathResult { return At(p) }
}

func when(cond func(Context) bool, p func(Context) string) func(Context) PathResult {
	return func(tc Context) PathResult {
		if !cond(tc) {
			return NotApplicable()
		}
		return At(p(tc))
	}
}

func androidSource(tc Context, class, ext string) string {
	return path.Join("android/src/main/java", tc.AndroidPackagePath(), tc.ObjectClassName+class+ext)
}

// Module returns the library module catalog.
func Module() []Descriptor {
	return []Descriptor{
		File("package.json.tmpl", "", fixed("package.json")),
		File("README.md.tmpl", "", fixed("README.md")),
		File("gitignore.tmpl", "", fixed(".gitignore")),
		File("index.js.tmpl", "", func(tc Context) PathResult {
			if tc.UseTypescript {
				return At("index.ts")
			}
			return At("index.js")
		}),
		File("examples_postinstall.js.tmpl", "", when(
			func(tc Context) bool { return tc.GenerateExample },
			func(Context) string { return "scripts/examples_postinstall.js" })),

		File("android/build.gradle.tmpl", options.PlatformAndroid, fixed("android/build.gradle")),
		File("android/AndroidManifest.xml.tmpl", options.PlatformAndroid, fixed("android/src/main/AndroidManifest.xml")),
		File("android/Module.java.tmpl", options.PlatformAndroid, when(
			func(tc Context) bool { return !tc.UseKotlin && !tc.View },
			func(tc Context) string { return androidSource(tc, "Module", ".java") })),
		File("android/Module.kt.tmpl", options.PlatformAndroid, when(
			func(tc Context) bool { return tc.UseKotlin && !tc.View },
			func(tc Context) string { return androidSource(tc, "Module", ".kt") })),
		File("android/Manager.java.tmpl", options.PlatformAndroid, when(
			func(tc Context) bool { return !tc.UseKotlin && tc.View },
			func(tc Context) string { return androidSource(tc, "Manager", ".java") })),
		File("android/Manager.kt.tmpl", options.PlatformAndroid, when(
			func(tc Context) bool { return tc.UseKotlin && tc.View },
			func(tc Context) string { return androidSource(tc, "Manager", ".kt") })),
		File("android/Package.java.tmpl", options.PlatformAndroid, when(
			func(tc Context) bool { return !tc.UseKotlin },
			func(tc Context) string { return androidSource(tc, "Package", ".java") })),
		File("android/Package.kt.tmpl", options.PlatformAndroid, when(
			func(tc Context) bool { return tc.UseKotlin },
			func(tc Context) string { return androidSource(tc, "Package", ".kt") })),

		File("ios/podspec.tmpl", options.PlatformIOS, func(tc Context) PathResult {
			return At(tc.ModuleName + ".podspec")
		}),
		File("ios/Module.h.tmpl", options.PlatformIOS, when(
			func(tc Context) bool { return !tc.UseSwift },
			func(tc Context) string { return "ios/" + tc.ObjectClassName + ".h" })),
		File("ios/Module.m.tmpl", options.PlatformIOS, when(
			func(tc Context) bool { return !tc.UseSwift },
			func(tc Context) string { return "ios/" + tc.ObjectClassName + ".m" })),
		File("ios/Module.swift.tmpl", options.PlatformIOS, when(
			func(tc Context) bool { return tc.UseSwift },
			func(tc Context) string { return "ios/" + tc.ObjectClassName + ".swift" })),
		File("ios/Bridge.m.tmpl", options.PlatformIOS, when(
			func(tc Context) bool { return tc.UseSwift },
			func(tc Context) string { return "ios/" + tc.ObjectClassName + ".m" })),
		File("ios/Bridging-Header.h.tmpl", options.PlatformIOS, when(
			func(tc Context) bool { return tc.UseSwift },
			func(tc Context) string { return "ios/" + tc.ObjectClassName + "-Bridging-Header.h" })),
		File("ios/Networking.tmpl", options.PlatformIOS, when(
			func(tc Context) bool { return tc.UseAppleNetworking },
			func(tc Context) string {
				if tc.UseSwift {
					return "ios/" + tc.ObjectClassName + "Networking.swift"
				}
				return "ios/" + tc.ObjectClassName + "Networking.m"
			})),
	}
}

// Example returns the catalog rendered into the module directory after the
// example app has been scaffolded.
func Example() []Descriptor {
	return []Descriptor{
		File("example/App.js.tmpl", "", func(tc Context) PathResult {
			if tc.UseTypescript {
				return At(path.Join(tc.ExampleName, "App.tsx"))
			}
			return At(path.Join(tc.ExampleName, "App.js"))
		}),
		File("example/metro.config.js.tmpl", "", func(tc Context) PathResult {
			return At(path.Join(tc.ExampleName, "metro.config.js"))
		}),
		File("example/README.md.tmpl", "", func(tc Context) PathResult {
			return At(path.Join(tc.ExampleName, "README.md"))
		}),
	}
}
