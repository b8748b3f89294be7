package theme

// builtinTable returns the themes shipped with codeview. Engine-native
// themes are not listed; they need no definition.
func builtinTable() map[string]Definition {
	return map[string]Definition{
		"monokai": {
			Base:    BaseDark,
			Inherit: true,
			Rules: []TokenRule{
				{Token: "", Foreground: "f8f8f2", Background: "272822"},
				{Token: "comment", Foreground: "75715e"},
				{Token: "string", Foreground: "e6db74"},
				{Token: "number", Foreground: "ae81ff"},
				{Token: "keyword", Foreground: "f92672"},
				{Token: "type", Foreground: "66d9ef", FontStyle: "italic"},
				{Token: "function", Foreground: "a6e22e"},
			},
			Colors: map[string]string{
				"editor.background":                  "#272822",
				"editor.foreground":                  "#f8f8f2",
				"editor.selectionBackground":         "#49483e",
				"editor.lineHighlightBackground":     "#3e3d32",
				"editorCursor.foreground":            "#f8f8f0",
				"editorWhitespace.foreground":        "#3b3a32",
				"editorIndentGuide.activeBackground": "#9d550fb0",
			},
		},
		"github": {
			Base:    BaseLight,
			Inherit: true,
			Rules: []TokenRule{
				{Token: "", Foreground: "24292e", Background: "ffffff"},
				{Token: "comment", Foreground: "6a737d", FontStyle: "italic"},
				{Token: "string", Foreground: "032f62"},
				{Token: "number", Foreground: "005cc5"},
				{Token: "keyword", Foreground: "d73a49"},
				{Token: "type", Foreground: "6f42c1"},
			},
			Colors: map[string]string{
				"editor.background":              "#ffffff",
				"editor.foreground":              "#24292e",
				"editor.lineHighlightBackground": "#f6f8fa",
				"editor.selectionBackground":     "#c8c8fa",
				"editorLineNumber.foreground":    "#1b1f234d",
			},
		},
		"solarized-dark": {
			Base:    BaseDark,
			Inherit: true,
			Rules: []TokenRule{
				{Token: "", Foreground: "839496", Background: "002b36"},
				{Token: "comment", Foreground: "586e75", FontStyle: "italic"},
				{Token: "string", Foreground: "2aa198"},
				{Token: "number", Foreground: "d33682"},
				{Token: "keyword", Foreground: "859900"},
				{Token: "type", Foreground: "b58900"},
			},
			Colors: map[string]string{
				"editor.background":              "#002b36",
				"editor.foreground":              "#839496",
				"editor.lineHighlightBackground": "#073642",
				"editor.selectionBackground":     "#274642",
				"editorCursor.foreground":        "#d30102",
			},
		},
		"solarized-light": {
			Base:    BaseLight,
			Inherit: true,
			Rules: []TokenRule{
				{Token: "", Foreground: "657b83", Background: "fdf6e3"},
				{Token: "comment", Foreground: "93a1a1", FontStyle: "italic"},
				{Token: "string", Foreground: "2aa198"},
				{Token: "number", Foreground: "d33682"},
				{Token: "keyword", Foreground: "859900"},
				{Token: "type", Foreground: "b58900"},
			},
			Colors: map[string]string{
				"editor.background":              "#fdf6e3",
				"editor.foreground":              "#657b83",
				"editor.lineHighlightBackground": "#eee8d5",
				"editor.selectionBackground":     "#eee8d5",
				"editorCursor.foreground":        "#657b83",
			},
		},
		"dracula": {
			Base:    BaseDark,
			Inherit: true,
			Rules: []TokenRule{
				{Token: "", Foreground: "f8f8f2", Background: "282a36"},
				{Token: "comment", Foreground: "6272a4"},
				{Token: "string", Foreground: "f1fa8c"},
				{Token: "number", Foreground: "bd93f9"},
				{Token: "keyword", Foreground: "ff79c6"},
				{Token: "type", Foreground: "8be9fd", FontStyle: "italic"},
				{Token: "function", Foreground: "50fa7b"},
			},
			Colors: map[string]string{
				"editor.background":              "#282a36",
				"editor.foreground":              "#f8f8f2",
				"editor.lineHighlightBackground": "#44475a",
				"editor.selectionBackground":     "#44475a",
				"editorCursor.foreground":        "#f8f8f0",
			},
		},
	}
}
