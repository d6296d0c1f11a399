// Package testsupport holds fixtures shared by package tests: placeholder
// media files, stub executables, and throwaway defaults stores.
package testsupport
