package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalSettingsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GlobalSettingsFile()
	if err != nil {
		t.Fatalf("GlobalSettingsFile() error = %v", err)
	}
	if want := filepath.Join(home, ".trajview", "settings.yaml"); path != want {
		t.Errorf("GlobalSettingsFile() = %q, want %q", path, want)
	}
}

func TestResolveConversationsDirDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, custom, err := ResolveConversationsDir("")
	if err != nil {
		t.Fatalf("ResolveConversationsDir() error = %v", err)
	}
	if want := filepath.Join(home, ".openhands", "conversations"); dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}
	if custom {
		t.Error("custom = true, want false for the default directory")
	}
}

func TestResolveConversationsDirCustom(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	input := t.TempDir()
	dir, custom, err := ResolveConversationsDir(input)
	if err != nil {
		t.Fatalf("ResolveConversationsDir(%q) error = %v", input, err)
	}
	if dir != input {
		t.Errorf("dir = %q, want %q", dir, input)
	}
	if !custom {
		t.Error("custom = false, want true for a custom directory")
	}
}

func TestResolveConversationsDirTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, custom, err := ResolveConversationsDir("~/archive")
	if err != nil {
		t.Fatalf("ResolveConversationsDir() error = %v", err)
	}
	if want := filepath.Join(home, "archive"); dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}
	if !custom {
		t.Error("custom = false, want true")
	}
}

func TestResolveConversationsDirPromotesSubdir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := t.TempDir()
	sub := filepath.Join(root, "conversations")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	dir, custom, err := ResolveConversationsDir(root)
	if err != nil {
		t.Fatalf("ResolveConversationsDir(%q) error = %v", root, err)
	}
	if dir != sub {
		t.Errorf("dir = %q, want the conversations subdirectory %q", dir, sub)
	}
	if !custom {
		t.Error("custom = false, want true")
	}
}

func TestResolveConversationsDirSourceHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	def := filepath.Join(home, ".openhands", "conversations")
	if err := os.MkdirAll(def, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// Naming ~/.openhands explicitly lands on the default directory and is
	// not considered custom.
	dir, custom, err := ResolveConversationsDir("~/.openhands")
	if err != nil {
		t.Fatalf("ResolveConversationsDir() error = %v", err)
	}
	if dir != def {
		t.Errorf("dir = %q, want %q", dir, def)
	}
	if custom {
		t.Error("custom = true, want false")
	}
}
