// Package processor contains the core logic behind the command line. It
// wires the translation resolver and the speech engine from the parsed
// flags, resolves single words or whole batch files, lists voices, and
// starts the GUI. This package serves as the main coordinator between all
// other components.
package processor
