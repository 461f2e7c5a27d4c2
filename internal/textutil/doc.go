// Package textutil provides tokenization and text similarity primitives
// shared by the alignment engine and the b-roll keyword matcher.
package textutil
