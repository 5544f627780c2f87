// Package cli implements the mcpcognito command line session runner.
package cli
