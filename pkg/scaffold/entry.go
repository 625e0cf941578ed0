package scaffold

import (
	"regexp"

	"github.com/fulmenhq/themekit/pkg/patch"
)

var (
	reactSiblingImport = regexp.MustCompile(`import\s*\{\s*initializeTheme\s*\}\s*from\s*['"][^'"]+['"];?`)
	vueSiblingImport   = regexp.MustCompile(`import\s*\{\s*initializeTheme\s*\}`)
	lastImport         = regexp.MustCompile(`(?m)^import\b[^\n]*;[ \t]*$`)
	siblingCall        = regexp.MustCompile(`initializeTheme\(\);`)
	inertiaApp         = regexp.MustCompile(`createInertiaApp\(\{`)
	colorThemeImported = regexp.MustCompile(`import\s*\{[^}]*\binitializeColorTheme\b[^}]*\}\s*from`)
)

// EntryCandidates lists the app entry files for a stack, in lookup order.
func EntryCandidates(stack Stack) []string {
	if stack == StackReact {
		return []string{"js/app.tsx"}
	}
	return []string{"js/app.ts", "js/app.js"}
}

// EntryRules returns the import and the call that initialize the colour theme
// in the app entry file of stack.
func EntryRules(stack Stack) []patch.Rule {
	importRule := patch.Rule{
		Equivalent: []*regexp.Regexp{colorThemeImported},
	}
	if stack == StackReact {
		importRule.Directive = "import { initializeColorTheme } from './hooks/use-color-theme';"
		importRule.Anchors = []patch.Anchor{
			{Name: "initializeTheme import", Pattern: reactSiblingImport, Placement: patch.AfterFirst},
			{Name: "last import", Pattern: lastImport, Placement: patch.AfterLast},
			{Name: "top", Placement: patch.Prepend},
		}
	} else {
		importRule.Directive = "import { initializeColorTheme } from './composables/useColorTheme';"
		importRule.Anchors = []patch.Anchor{
			{Name: "initializeTheme import", Pattern: vueSiblingImport, Placement: patch.BeforeFirst},
			{Name: "last import", Pattern: lastImport, Placement: patch.AfterLast},
			{Name: "top", Placement: patch.Prepend},
		}
	}

	callRule := patch.Rule{
		Directive: "initializeColorTheme();",
		Anchors: []patch.Anchor{
			{Name: "initializeTheme call", Pattern: siblingCall, Placement: patch.AfterFirst},
			{Name: "createInertiaApp", Pattern: inertiaApp, Placement: patch.BeforeFirst, Separator: "\n\n"},
			{Name: "end", Placement: patch.Append},
		},
	}
	return []patch.Rule{importRule, callRule}
}

// PatchEntry applies the entry rules of stack to doc.
func PatchEntry(doc patch.Document, stack Stack) (patch.Document, patch.Result, error) {
	inserted := 0
	for _, rule := range EntryRules(stack) {
		next, res, err := patch.InsertOnce(doc, rule)
		if err != nil {
			return doc, patch.Result{Outcome: patch.Unchanged}, err
		}
		if res.Outcome == patch.Inserted {
			inserted++
		}
		doc = next
	}
	if inserted == 0 {
		return doc, patch.Result{Outcome: patch.AlreadyPresent}, nil
	}
	return doc, patch.Result{Outcome: patch.Inserted, Count: inserted}, nil
}
