// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/gamesq/gamesq/internal/attrs"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks the flags that only make sense together, after
// every flag source has been applied.
func GlobalFlagsValidator(_ context.Context, c *cli.Command) error {
	if spec := c.String("attrs"); spec != "" {
		var al attrs.AttrList
		if err := al.Set(spec); err != nil {
			return fmt.Errorf("--attrs: %w", err)
		}
	}
	return nil
}

var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}

func OutputValidator(value any) error {
	if s, ok := value.(string); ok && slices.Contains(validOutputFlagValues, s) {
		return nil
	}
	return fmt.Errorf("must be one of %v", validOutputFlagValues)
}

func PaddingValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
