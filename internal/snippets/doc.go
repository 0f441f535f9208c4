// Package snippets discovers snippet templates with their per-language translations
// and renders them.
//
// The snippet tree is laid out as <root>/<chapter>/<section>/, each section holding
// one template file and any number of translation files:
//
//	docs/snippets/
//	  intro/
//	    hello-world/
//	      main.zig.tmpl
//	      en.toml
//	      fr.toml
//
// IndexBuilder turns that tree into an Index; Renderer turns an Index into Rendered,
// the language -> chapter -> snippet name -> text lookup consumed by document expansion.
package snippets
