package internal

// SysConfDir is the directory the default config file is looked up in.
// It may be overridden at build time using -ldflags "-X ...".
var SysConfDir = "/etc"
