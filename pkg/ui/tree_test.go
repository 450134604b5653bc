package ui

import (
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/sceneview/pkg/collapse"
	"github.com/vanderheijden86/sceneview/pkg/identity"
	"github.com/vanderheijden86/sceneview/pkg/scene"
)

// renderTree draws root with a fresh frame and returns it.
func renderTree(tr TreeRenderer, root *scene.Node, input Input) *Frame {
	f := NewFrame(newTestTheme(), 40, input)
	tr.Render(f, root, nil)
	return f
}

func rowLabels(rows []Row) []string {
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
	}
	return labels
}

// genNode draws a random scene tree at most depth levels below the root.
func genNode(depth int) *rapid.Generator[scene.Node] {
	return rapid.Custom(func(t *rapid.T) scene.Node {
		n := scene.Node{
			Label:   rapid.StringMatching(`[A-Za-z0-9 ]{1,8}`).Draw(t, "label"),
			Visible: rapid.Bool().Draw(t, "visible"),
		}
		if depth > 0 {
			n.Children = rapid.SliceOfN(genNode(depth-1), 0, 4).Draw(t, "children")
		}
		return n
	})
}

func visibilities(root *scene.Node) []bool {
	var out []bool
	root.Walk(func(_ []string, n *scene.Node) {
		out = append(out, n.Visible)
	})
	return out
}

// TestTreeDemoFirstFrame verifies the start-up hierarchy as first drawn
func TestTreeDemoFirstFrame(t *testing.T) {
	root := scene.DemoTree()
	f := renderTree(TreeRenderer{Store: collapse.New(), Indent: 2}, &root, Input{Cursor: -1})

	rows := f.Rows()
	want := []struct {
		label   string
		branch  bool
		open    bool
		visible bool
		depth   int
	}{
		{"Root", true, true, true, 0},
		{"Player", false, false, true, 1},
		{"Obstacle", false, false, true, 1},
		{"Aliens", true, true, true, 1},
		{"Alien 1", false, false, true, 2},
		{"Alien 2", false, false, false, 2},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d: %v", len(want), len(rows), rowLabels(rows))
	}
	for i, w := range want {
		r := rows[i]
		if r.Label != w.label || r.Branch != w.branch || r.Open != w.open || r.Visible != w.visible || r.Depth != w.depth {
			t.Errorf("row %d = %+v, want %+v", i, r, w)
		}
	}

	lines := f.TreeLines()
	if !strings.HasSuffix(lines[4], "[x]") || !strings.HasSuffix(lines[5], "[ ]") {
		t.Errorf("alien checkboxes wrong:\n%s\n%s", lines[4], lines[5])
	}
	if !strings.Contains(lines[1], "• Player") || !strings.Contains(lines[2], "• Obstacle") {
		t.Errorf("Player/Obstacle should be leaf rows:\n%s\n%s", lines[1], lines[2])
	}
	if !strings.Contains(lines[3], "▾ Aliens") {
		t.Errorf("Aliens should be expanded: %s", lines[3])
	}
}

// TestTreeGuides verifies tree branch characters for nested rows
func TestTreeGuides(t *testing.T) {
	root := scene.DemoTree()
	f := renderTree(TreeRenderer{Store: collapse.New(), Indent: 2}, &root, Input{Cursor: -1})

	prefixes := []string{"▾ Root", "├─ • Player", "├─ • Obstacle", "└─ ▾ Aliens", "   ├─ • Alien 1", "   └─ • Alien 2"}
	for i, p := range prefixes {
		if !strings.HasPrefix(f.TreeLines()[i], p) {
			t.Errorf("line %d = %q, want prefix %q", i, f.TreeLines()[i], p)
		}
	}
}

func TestTreeGuidesPipeForOpenMiddleSibling(t *testing.T) {
	root := scene.Branch("Root", true,
		scene.Branch("A", true, scene.Leaf("a1", true)),
		scene.Leaf("B", true),
	)
	f := renderTree(TreeRenderer{Store: collapse.New(), Indent: 2}, &root, Input{Cursor: -1})

	if got := f.TreeLines()[2]; !strings.HasPrefix(got, "│  └─ • a1") {
		t.Errorf("expected pipe guide under a middle sibling, got %q", got)
	}
}

// TestTreeIdentitiesFollowPaths verifies each row's identity is its ancestry path
func TestTreeIdentitiesFollowPaths(t *testing.T) {
	root := scene.DemoTree()
	f := renderTree(TreeRenderer{Store: collapse.New()}, &root, Input{Cursor: -1})

	for _, r := range f.Rows() {
		if want := identity.ResolvePath(r.Path); r.ID != want {
			t.Errorf("row %v: id %s, want %s", r.Path, r.ID, want)
		}
	}
}

// TestTreeCollapseHidesChildren verifies collapsing removes descendants from the frame
func TestTreeCollapseHidesChildren(t *testing.T) {
	root := scene.DemoTree()
	store := collapse.New()
	tr := TreeRenderer{Store: store}

	// Row 3 is Aliens
	f := renderTree(tr, &root, Input{Cursor: 3, Action: ActionToggleOpen})
	if got := rowLabels(f.Rows()); !reflect.DeepEqual(got, []string{"Root", "Player", "Obstacle", "Aliens"}) {
		t.Errorf("rows after collapse = %v", got)
	}
	if store.IsOpen(identity.ResolvePath([]string{"Root", "Aliens"})) {
		t.Error("store should record Aliens as collapsed")
	}

	// Collapsing the root hides everything else
	f = renderTree(tr, &root, Input{Cursor: 0, Action: ActionToggleOpen})
	if got := rowLabels(f.Rows()); !reflect.DeepEqual(got, []string{"Root"}) {
		t.Errorf("rows after root collapse = %v", got)
	}
}

// TestTreeCollapseStableAcrossFrames verifies state persists without interaction
func TestTreeCollapseStableAcrossFrames(t *testing.T) {
	root := scene.DemoTree()
	store := collapse.New()
	tr := TreeRenderer{Store: store}

	renderTree(tr, &root, Input{Cursor: 3, Action: ActionCollapse})
	first := renderTree(tr, &root, Input{Cursor: -1})
	second := renderTree(tr, &root, Input{Cursor: -1})

	if !reflect.DeepEqual(first.Rows(), second.Rows()) {
		t.Errorf("rows changed between idle frames:\n%v\n%v", first.Rows(), second.Rows())
	}
	if !reflect.DeepEqual(first.TreeLines(), second.TreeLines()) {
		t.Error("lines changed between idle frames")
	}
	if first.Rows()[3].Open {
		t.Error("Aliens should still be collapsed")
	}
}

// TestTreeUnchangedOpenStateIsNotStored verifies idle frames leave the store empty
func TestTreeUnchangedOpenStateIsNotStored(t *testing.T) {
	root := scene.DemoTree()
	store := collapse.New()
	renderTree(TreeRenderer{Store: store}, &root, Input{Cursor: -1})

	if store.Len() != 0 {
		t.Errorf("expected no stored entries after an idle frame, got %d", store.Len())
	}
}

// TestTreeVisibilityToggleIsolated verifies a toggle touches only its own node
func TestTreeVisibilityToggleIsolated(t *testing.T) {
	root := scene.DemoTree()
	before := root.Clone()

	// Row 4 is Alien 1: it has an ancestor (Aliens) and a sibling (Alien 2)
	renderTree(TreeRenderer{Store: collapse.New()}, &root, Input{Cursor: 4, Action: ActionToggleVisible})

	if root.Find("Aliens", "Alien 1").Visible {
		t.Error("Alien 1 should now be hidden")
	}
	if root.Find("Aliens", "Alien 2").Visible != before.Find("Aliens", "Alien 2").Visible {
		t.Error("sibling visibility changed")
	}
	if !root.Find("Aliens").Visible || !root.Visible {
		t.Error("ancestor visibility changed")
	}
	if !root.Find("Player").Visible || !root.Find("Obstacle").Visible {
		t.Error("unrelated visibility changed")
	}
}

// TestTreeHiddenBranchStillShowsChildren verifies visibility does not cascade
func TestTreeHiddenBranchStillShowsChildren(t *testing.T) {
	root := scene.DemoTree()
	tr := TreeRenderer{Store: collapse.New()}

	renderTree(tr, &root, Input{Cursor: 3, Action: ActionToggleVisible})
	f := renderTree(tr, &root, Input{Cursor: -1})

	if root.Find("Aliens").Visible {
		t.Fatal("Aliens should be hidden")
	}
	if !root.Find("Aliens", "Alien 1").Visible {
		t.Error("hiding a branch must not hide its children")
	}
	if len(f.Rows()) != 6 {
		t.Errorf("hidden branch should still list children, got %d rows", len(f.Rows()))
	}
}

// TestTreeRenameChangesIdentity verifies collapse state does not follow a rename
func TestTreeRenameChangesIdentity(t *testing.T) {
	root := scene.DemoTree()
	store := collapse.New()
	tr := TreeRenderer{Store: store}

	// Alien 2 starts hidden
	if root.Find("Aliens", "Alien 2").Visible {
		t.Fatal("Alien 2 should start hidden")
	}

	renderTree(tr, &root, Input{Cursor: 3, Action: ActionCollapse})
	oldAlien := identity.ResolvePath([]string{"Root", "Aliens", "Alien 2"})

	// Renaming a child changes the child's identity only. Identity comes
	// from ancestors, so Aliens staying collapsed here is intended.
	root.Rename([]string{"Aliens", "Alien 2"}, "Alien Two")
	f := renderTree(tr, &root, Input{Cursor: -1})
	if f.Rows()[3].Open {
		t.Error("Aliens identity does not depend on its children and should stay collapsed")
	}
	if identity.ResolvePath([]string{"Root", "Aliens", "Alien Two"}) == oldAlien {
		t.Error("renamed node must get a new identity")
	}

	// Renaming the collapsed node itself loses its state: it reopens to the default
	root.Rename([]string{"Aliens"}, "Invaders")
	f = renderTree(tr, &root, Input{Cursor: -1})
	if got := f.Rows()[3]; got.Label != "Invaders" || !got.Open {
		t.Errorf("renamed branch should reopen to default, got %+v", got)
	}
	if got := rowLabels(f.Rows()); !reflect.DeepEqual(got[4:], []string{"Alien 1", "Alien Two"}) {
		t.Errorf("children of reopened branch = %v", got[4:])
	}
	if !store.Known(identity.ResolvePath([]string{"Root", "Aliens"})) {
		t.Error("old entry should remain as an orphan")
	}
}

// TestTreeDuplicateSiblingLabelsShareState verifies colliding identities share one entry
func TestTreeDuplicateSiblingLabelsShareState(t *testing.T) {
	root := scene.Branch("Root", true,
		scene.Branch("Group", true, scene.Leaf("a", true)),
		scene.Branch("Group", true, scene.Leaf("b", true)),
	)
	tr := TreeRenderer{Store: collapse.New()}

	// Collapse the first Group (row 1)
	renderTree(tr, &root, Input{Cursor: 1, Action: ActionCollapse})
	f := renderTree(tr, &root, Input{Cursor: -1})

	if got := rowLabels(f.Rows()); !reflect.DeepEqual(got, []string{"Root", "Group", "Group"}) {
		t.Errorf("both groups should be collapsed together, rows = %v", got)
	}
	if f.Rows()[1].ID != f.Rows()[2].ID {
		t.Error("duplicate sibling labels should resolve to the same identity")
	}
}

// TestTreeRowsCarryChildIndex verifies rows record child positions from the root
func TestTreeRowsCarryChildIndex(t *testing.T) {
	for _, traversal := range []Traversal{TraversalRecursive, TraversalStack} {
		t.Run(traversal.String(), func(t *testing.T) {
			root := scene.Branch("Root", true, scene.Leaf("Dup", true), scene.Leaf("Dup", true))
			f := renderTree(TreeRenderer{Store: collapse.New(), Traversal: traversal}, &root, Input{Cursor: -1})

			rows := f.Rows()
			if len(rows[0].Index) != 0 {
				t.Errorf("root index = %v, want empty", rows[0].Index)
			}
			if !reflect.DeepEqual(rows[1].Index, []int{0}) || !reflect.DeepEqual(rows[2].Index, []int{1}) {
				t.Errorf("sibling indexes = %v, %v", rows[1].Index, rows[2].Index)
			}
		})
	}
}

func TestTreeRowIndexResolvesToNode(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genNode(3).Draw(t, "root")
		f := renderTree(TreeRenderer{Store: collapse.New()}, &root, Input{Cursor: -1})

		for _, row := range f.Rows() {
			n := root.At(row.Index...)
			if n == nil || n.Label != row.Label {
				t.Fatalf("row %v index %v resolves to %+v", row.Path, row.Index, n)
			}
		}
	})
}

func TestTreeNilInputs(t *testing.T) {
	f := NewFrame(newTestTheme(), 40, Input{})
	TreeRenderer{}.Render(f, nil, nil)
	if len(f.Rows()) != 0 {
		t.Error("nil node should draw nothing")
	}

	root := scene.DemoTree()
	TreeRenderer{}.Render(f, &root, nil)
	if len(f.Rows()) != 6 {
		t.Errorf("renderer without store should use defaults, got %d rows", len(f.Rows()))
	}
}

func TestTreeRenderUnderParent(t *testing.T) {
	parent := identity.Root("Scene")
	node := scene.Branch("Root", true, scene.Leaf("x", true))

	f := NewFrame(newTestTheme(), 40, Input{Cursor: -1})
	TreeRenderer{Store: collapse.New()}.Render(f, &node, &parent)

	if got, want := f.Rows()[1].ID, parent.With("Root").With("x"); got != want {
		t.Errorf("child id = %s, want %s", got, want)
	}
}

func TestParseTraversal(t *testing.T) {
	if ParseTraversal("stack") != TraversalStack {
		t.Error("stack not parsed")
	}
	if ParseTraversal("recursive") != TraversalRecursive || ParseTraversal("") != TraversalRecursive {
		t.Error("recursive should be the default")
	}
	if TraversalStack.String() != "stack" || TraversalRecursive.String() != "recursive" {
		t.Error("String() does not round-trip")
	}
}

// TestTreePreOrderProperty verifies rows follow model order for any tree
func TestTreePreOrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genNode(3).Draw(t, "root")
		traversal := rapid.SampledFrom([]Traversal{TraversalRecursive, TraversalStack}).Draw(t, "traversal")

		f := renderTree(TreeRenderer{Store: collapse.New(), Traversal: traversal}, &root, Input{Cursor: -1})

		if got, want := rowLabels(f.Rows()), root.Labels(); !reflect.DeepEqual(got, want) {
			t.Fatalf("rows %v, want pre-order %v", got, want)
		}
	})
}

// TestTreeVisibilityToggleProperty verifies exactly one visible flag flips
func TestTreeVisibilityToggleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genNode(3).Draw(t, "root")
		target := rapid.IntRange(0, root.Count()-1).Draw(t, "target")
		before := visibilities(&root)

		// With every branch open, row i is the i-th node in pre-order
		renderTree(TreeRenderer{Store: collapse.New()}, &root, Input{Cursor: target, Action: ActionToggleVisible})
		after := visibilities(&root)

		for i := range before {
			flipped := before[i] != after[i]
			if flipped != (i == target) {
				t.Fatalf("node %d flipped=%v, target %d", i, flipped, target)
			}
		}
	})
}

// TestTreeIdleFrameIsIdempotent verifies re-rendering without input changes nothing
func TestTreeIdleFrameIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genNode(3).Draw(t, "root")
		tr := TreeRenderer{Store: collapse.New()}

		// Put the store in some arbitrary state first
		for i := 0; i < 3; i++ {
			cursor := rapid.IntRange(0, root.Count()-1).Draw(t, "cursor")
			renderTree(tr, &root, Input{Cursor: cursor, Action: ActionToggleOpen})
		}

		snapshot := root.Clone()
		a := renderTree(tr, &root, Input{Cursor: 0})
		b := renderTree(tr, &root, Input{Cursor: 0})

		if !reflect.DeepEqual(a.Rows(), b.Rows()) || !reflect.DeepEqual(a.TreeLines(), b.TreeLines()) {
			t.Fatal("idle frames differ")
		}
		if !reflect.DeepEqual(snapshot, root) {
			t.Fatal("idle frame mutated the model")
		}
	})
}

// TestTreeTraversalsAgree verifies the stack traversal draws exactly what recursion draws
func TestTreeTraversalsAgree(t *testing.T) {
	actions := []Action{ActionNone, ActionToggleVisible, ActionToggleOpen, ActionExpand, ActionCollapse}

	rapid.Check(t, func(t *rapid.T) {
		rootA := genNode(4).Draw(t, "root")
		rootB := rootA.Clone()
		rec := TreeRenderer{Store: collapse.New(), Traversal: TraversalRecursive, Indent: 2}
		stk := TreeRenderer{Store: collapse.New(), Traversal: TraversalStack, Indent: 2}

		frames := rapid.IntRange(1, 6).Draw(t, "frames")
		for i := 0; i < frames; i++ {
			input := Input{
				Cursor: rapid.IntRange(0, rootA.Count()-1).Draw(t, "cursor"),
				Action: rapid.SampledFrom(actions).Draw(t, "action"),
			}
			fa := renderTree(rec, &rootA, input)
			fb := renderTree(stk, &rootB, input)

			if !reflect.DeepEqual(fa.Rows(), fb.Rows()) {
				t.Fatalf("frame %d rows differ:\nrecursive %v\nstack     %v", i, fa.Rows(), fb.Rows())
			}
			if !reflect.DeepEqual(fa.TreeLines(), fb.TreeLines()) {
				t.Fatalf("frame %d lines differ", i)
			}
		}
		if !reflect.DeepEqual(rootA, rootB) {
			t.Fatal("models diverged")
		}
	})
}
