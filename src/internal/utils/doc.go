// Package utils provides small helpers shared across duetctl.
//
//   - Path utilities: resolve relative paths and expand "~"
//   - Closers: close a resource and log instead of failing
//
// Example:
//
//	path, err := utils.ExpandHome("~/.config/duetctl/duetctl.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Returns: /home/user/.config/duetctl/duetctl.toml
package utils
