package internal

// Version is the current flashpage version, printed by --version and shown in the window title.
const Version = "0.3.0"
