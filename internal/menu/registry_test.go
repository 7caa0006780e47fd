package menu

import "testing"

func TestBuildRegistryWiresSignalMenu(t *testing.T) {
	registry := BuildRegistry()
	root := registry.Root()
	if root == nil {
		t.Fatalf("expected root node")
	}
	if len(root.Items) != 1 || root.Items[0].ID != "signal" {
		t.Fatalf("expected root to list the signal menu, got %+v", root.Items)
	}

	signal, ok := registry.Child("root", "signal")
	if !ok {
		t.Fatalf("expected signal node under root")
	}
	if len(signal.Items) != len(signalOrder) {
		t.Fatalf("expected %d signal items, got %d", len(signalOrder), len(signal.Items))
	}

	for _, id := range signalOrder {
		node, ok := registry.Child("signal", id)
		if !ok {
			t.Fatalf("expected child %q under signal", id)
		}
		if node.ID != "signal:"+id {
			t.Fatalf("expected node ID signal:%s, got %q", id, node.ID)
		}
		if node.Action == nil {
			t.Fatalf("expected action for %q", id)
		}
	}
}

func TestRegistryFind(t *testing.T) {
	registry := BuildRegistry()
	if _, ok := registry.Find("signal:terminate"); !ok {
		t.Fatalf("expected to find signal:terminate")
	}
	if _, ok := registry.Find("signal:explode"); ok {
		t.Fatalf("did not expect unknown node")
	}
	if _, ok := registry.Child("bogus", "terminate"); ok {
		t.Fatalf("did not expect child under unknown parent")
	}
}

func TestParentKey(t *testing.T) {
	cases := []struct {
		id     string
		parent string
		key    string
	}{
		{"", "root", ""},
		{"signal", "root", "signal"},
		{"signal:terminate", "signal", "terminate"},
		{"a:b:c", "a:b", "c"},
	}
	for _, tc := range cases {
		parent, key := parentKey(tc.id)
		if parent != tc.parent || key != tc.key {
			t.Fatalf("parentKey(%q) = (%q, %q), expected (%q, %q)", tc.id, parent, key, tc.parent, tc.key)
		}
	}
}
