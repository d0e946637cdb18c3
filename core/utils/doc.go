// Package utils provides scalar conversion helpers shared by the loaders,
// the field mapper and the store. ParseNumber accepts both '.' and ','
// decimal separators, as found in Polish supplier feeds.
package utils
