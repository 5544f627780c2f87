// Package collection provides concurrency safe generic containers
package collection
