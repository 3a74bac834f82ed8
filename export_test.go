package rest

// Test-only exports for internal functions.
var ResolveSlice = resolveSlice
