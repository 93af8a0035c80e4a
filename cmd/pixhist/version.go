package main

// BuildNumber is replaced at link time: -ldflags "-X main.BuildNumber=...".
var BuildNumber = "dev"
