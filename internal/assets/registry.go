package assets

// Registry lists the stubs installed into a project.
// Update this when adding/removing stubs.

// Stub roles.
const (
	RoleRegistry = "registry" // theme list module
	RoleTheme    = "theme"    // starter theme stylesheet
	RoleState    = "state"    // hook or composable holding the active theme
	RoleSwitcher = "switcher" // theme picker component
)

type AssetInfo struct {
	Stack string // "react", "vue", or "" for both
	Role  string
	Path  string // relative to the resources root
}

var Registry = []AssetInfo{
	{Role: RoleRegistry, Path: "js/conf/themes.ts"},
	{Role: RoleTheme, Path: "css/themes/rose.css"},
	{Role: RoleTheme, Path: "css/themes/ocean.css"},
	{Stack: "react", Role: RoleState, Path: "js/hooks/use-color-theme.tsx"},
	{Stack: "react", Role: RoleSwitcher, Path: "js/components/theme-switcher.tsx"},
	{Stack: "vue", Role: RoleState, Path: "js/composables/useColorTheme.ts"},
	{Stack: "vue", Role: RoleSwitcher, Path: "js/components/ThemeSwitcher.vue"},
}

// ForStack returns the registry entries that apply to stack, in order.
func ForStack(stack string) []AssetInfo {
	var out []AssetInfo
	for _, info := range Registry {
		if info.Stack == "" || info.Stack == stack {
			out = append(out, info)
		}
	}
	return out
}

// Lookup returns the entry for stack and role. Shared entries match any stack.
func Lookup(stack, role string) (AssetInfo, bool) {
	for _, info := range ForStack(stack) {
		if info.Role == role {
			return info, true
		}
	}
	return AssetInfo{}, false
}
