package types

// Version is the cihelper build version, overridden at link time.
var Version = "dev"
