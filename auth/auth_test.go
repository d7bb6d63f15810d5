// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateShareSlug_Deterministic(t *testing.T) {
	a := GenerateShareSlug("room-123", "salt")
	b := GenerateShareSlug("room-123", "salt")

	if a != b {
		t.Errorf("Expected identical slugs for same inputs, got %s and %s", a, b)
	}
}

func TestGenerateShareSlug_SaltChangesSlug(t *testing.T) {
	a := GenerateShareSlug("room-123", "salt-one")
	b := GenerateShareSlug("room-123", "salt-two")

	if a == b {
		t.Error("Expected different slugs for different salts")
	}
}

func TestGenerateShareSlug_RoomChangesSlug(t *testing.T) {
	a := GenerateShareSlug("room-123", "salt")
	b := GenerateShareSlug("room-456", "salt")

	if a == b {
		t.Error("Expected different slugs for different rooms")
	}
}

func TestGenerateShareSlug_URLFriendly(t *testing.T) {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	slug := GenerateShareSlug("room-123", "salt")

	if slug == "" {
		t.Fatal("Expected non-empty slug")
	}
	for _, c := range slug {
		if !strings.ContainsRune(base62Chars, c) {
			t.Errorf("Slug contains non-base62 character %q: %s", c, slug)
		}
	}
}
