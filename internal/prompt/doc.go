// Package prompt implements prompt entities, rendering and the prompt
// manager.
package prompt
