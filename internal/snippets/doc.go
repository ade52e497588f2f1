// Package snippets holds the runnable teaching snippets (loop, fibonacci,
// factorial, showcase, tokens) and the registry the application uses to look
// them up by name.
//
// Every snippet is independent: it owns its local state, writes its lines to
// the io.Writer it is given and returns. Nothing is shared between snippets.
package snippets
