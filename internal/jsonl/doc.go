// Package jsonl splits JSON Lines input into partitions of parsed records. Records are parsed with
// https://github.com/tidwall/gjson, and fields are addressed with gjson paths.
package jsonl
