package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/pulse/internal/ctxutil"
	"github.com/example/pulse/internal/core/workday"
)

// validateEntityID checks that an argument looks like an id pulse generated.
// Returns an error with helpful message when a name was passed instead.
func validateEntityID(id, entityType string) error {
	if _, err := uuid.Parse(id); err == nil {
		return nil
	}
	hint := "pulse initiative list"
	if entityType == "update" {
		hint = "pulse timeline INITIATIVE_ID"
	}
	return fmt.Errorf("invalid %s ID '%s'. IDs look like %s; find them with: %s", entityType, id, uuid.Nil, hint)
}

// initiativeIDArg validates the single initiative id argument.
func initiativeIDArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	return validateEntityID(args[0], "initiative")
}

// parseDueFlags parses repeated --due N=YYYY-MM-DD values keyed by 1-based task number.
func parseDueFlags(values []string) (map[int]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	due := make(map[int]string, len(values))
	for _, v := range values {
		n, date, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --due %q: expected N=YYYY-MM-DD", v)
		}
		num, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil, fmt.Errorf("invalid --due %q: task number must be an integer", v)
		}
		date = strings.TrimSpace(date)
		if date != "" {
			if _, err := workday.ParseDate(date, time.UTC); err != nil {
				return nil, fmt.Errorf("invalid --due %q: %w", v, err)
			}
		}
		due[num] = date
	}
	return due, nil
}

// commandContext returns the command's context, acting as the --as user when given.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if as, _ := cmd.Flags().GetString("as"); as != "" {
		ctx = ctxutil.WithUserID(ctx, as)
	}
	return ctx
}
