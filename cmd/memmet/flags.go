package main

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// normalizeFlagName lets users spell flags with underscores and keeps the
// out_dir alias for --output-directory.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if name == "out-dir" {
		name = "output-directory"
	}
	return pflag.NormalizedName(name)
}

// optionalBool is a flag that requires an explicit true/false value and
// records whether it was given.
type optionalBool struct {
	value *bool
}

func (b *optionalBool) String() string {
	if b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(value string) error {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	b.value = &parsed
	return nil
}

func (b *optionalBool) Type() string { return "true|false" }

var _ pflag.Value = (*optionalBool)(nil)

// changedBool returns a pointer to the flag value when the user set it.
func changedBool(flags *pflag.FlagSet, name string, value bool) *bool {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}
