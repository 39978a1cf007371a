package app

import (
	"reflect"
	"testing"
)

func TestCreateCommand_Flags(t *testing.T) {
	for _, name := range []string{"python", "description", "tags"} {
		if createCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %s not defined on create", name)
		}
	}
}

func TestRemoveCommand_Flags(t *testing.T) {
	flag := removeCmd.Flags().Lookup("force")
	if flag == nil {
		t.Fatal("force flag not defined on remove")
	}
	if flag.DefValue != "false" {
		t.Errorf("force default = %s, want false", flag.DefValue)
	}
}

func TestAddCommand_Flags(t *testing.T) {
	if addCmd.Flags().Lookup("name") == nil {
		t.Error("name flag not defined on add")
	}
}

func TestFreezeCommand_Flags(t *testing.T) {
	if freezeCmd.Flags().Lookup("tracked-only") == nil {
		t.Error("tracked-only flag not defined on freeze")
	}
}

func TestStatusCommand_Flags(t *testing.T) {
	if statusCmd.Flags().Lookup("current") == nil {
		t.Error("current flag not defined on status")
	}
}

func TestCleanupCommand_Flags(t *testing.T) {
	for _, name := range []string{"dry-run", "yes", "older-than-days"} {
		if cleanupCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %s not defined on cleanup", name)
		}
	}

	older := cleanupCmd.Flags().Lookup("older-than-days")
	if older.DefValue != "0" {
		t.Errorf("older-than-days default = %s, want 0", older.DefValue)
	}
}

func TestWatchCommand_Flags(t *testing.T) {
	for _, name := range []string{"daemon", "stop", "pid-file", "log-file"} {
		if watchCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %s not defined on watch", name)
		}
	}

	// The internal child flag exists but stays out of help output.
	child := watchCmd.Flags().Lookup("daemon-child")
	if child == nil {
		t.Fatal("daemon-child flag not defined on watch")
	}
	if !child.Hidden {
		t.Error("daemon-child flag should be hidden")
	}
}

func TestSetupCommand_Flags(t *testing.T) {
	if setupCmd.Flags().Lookup("print") == nil {
		t.Error("print flag not defined on setup")
	}
}

func TestDedupTags(t *testing.T) {
	got := dedupTags([]string{"ml", "gpu", "ml", " ", "gpu", "web"})
	want := []string{"ml", "gpu", "web"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupTags = %v, want %v", got, want)
	}
}
