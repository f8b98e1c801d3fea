// Package initiative contains the pure business logic for initiative operations.
// Guards are pure functions that evaluate preconditions without side effects.
package initiative

import (
	"fmt"
	"strings"
)

// Kind distinguishes regular initiatives from the miscellaneous task container.
type Kind string

const (
	// KindStandard initiatives receive versioned status updates.
	KindStandard Kind = "standard"
	// KindMiscellaneous is the single container whose task list is edited in place.
	KindMiscellaneous Kind = "miscellaneous"
)

// ResolveKind decides an initiative's kind from its name at creation time.
// Afterwards the stored kind is authoritative.
func ResolveKind(name, reservedName string) Kind {
	if strings.TrimSpace(name) == reservedName {
		return KindMiscellaneous
	}
	return KindStandard
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateInitiativeContext provides context for initiative creation guards.
type CreateInitiativeContext struct {
	OwnerID         string
	Name            string
	NameTaken       bool // owner already has an initiative with this name
	Kind            Kind
	ContainerExists bool // owner already has a miscellaneous container
}

// OwnershipContext provides context for guards on an existing initiative.
type OwnershipContext struct {
	InitiativeID string
	Exists       bool
	OwnerID      string
	CallerID     string
}

// SaveUpdateContext provides context for versioned update guards.
type SaveUpdateContext struct {
	OwnershipContext
	Kind Kind
}

// SaveTasksInPlaceContext provides context for in-place task save guards.
type SaveTasksInPlaceContext struct {
	UpdateID     string
	UpdateExists bool
	OwnershipContext
	Kind Kind
}

// CanCreateInitiative evaluates whether an initiative can be created.
// Rules:
// - Caller must be signed in
// - Name must not be blank
// - Name must be unique per owner
// - Only one miscellaneous container per owner
func CanCreateInitiative(ctx CreateInitiativeContext) GuardResult {
	if ctx.OwnerID == "" {
		return GuardResult{Allowed: false, Reason: "not signed in. Run: pulse login --user-id ID"}
	}

	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Allowed: false, Reason: "initiative name is required"}
	}

	if ctx.NameTaken {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("initiative %q already exists", ctx.Name),
		}
	}

	if ctx.Kind == KindMiscellaneous && ctx.ContainerExists {
		return GuardResult{Allowed: false, Reason: "a miscellaneous container already exists"}
	}

	return GuardResult{Allowed: true}
}

// CanAccessInitiative evaluates whether the caller may read or modify an initiative.
// Rules:
// - Initiative must exist
// - Initiative must belong to the caller
func CanAccessInitiative(ctx OwnershipContext) GuardResult {
	if !ctx.Exists || (ctx.CallerID != "" && ctx.OwnerID != ctx.CallerID) {
		// Other users' initiatives are reported as missing.
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("initiative %s not found", ctx.InitiativeID),
		}
	}
	return GuardResult{Allowed: true}
}

// CanSaveUpdate evaluates whether a versioned update can be saved.
// Rules:
// - Caller must own the initiative
// - The miscellaneous container does not take versioned updates
func CanSaveUpdate(ctx SaveUpdateContext) GuardResult {
	if r := CanAccessInitiative(ctx.OwnershipContext); !r.Allowed {
		return r
	}

	if ctx.Kind == KindMiscellaneous {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("initiative %s is the miscellaneous container; edit its tasks with: pulse other save", ctx.InitiativeID),
		}
	}

	return GuardResult{Allowed: true}
}

// CanSaveTasksInPlace evaluates whether an update's tasks can be replaced in place.
// Rules:
// - Update must exist
// - Caller must own its initiative
// - Only the miscellaneous container is edited in place
func CanSaveTasksInPlace(ctx SaveTasksInPlaceContext) GuardResult {
	if !ctx.UpdateExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("update %s not found", ctx.UpdateID),
		}
	}

	if r := CanAccessInitiative(ctx.OwnershipContext); !r.Allowed {
		return r
	}

	if ctx.Kind != KindMiscellaneous {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("update %s belongs to a versioned initiative; submit a new update instead", ctx.UpdateID),
		}
	}

	return GuardResult{Allowed: true}
}
