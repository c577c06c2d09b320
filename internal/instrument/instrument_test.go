package instrument

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(t *testing.T) {
	t.Helper()
	n := 0
	prev := NewID
	NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { NewID = prev })
}

func TestChecklistEditing(t *testing.T) {
	c, raises := Checklist{}.AddItem("Raises hand")
	c = c.Toggle(raises)
	assert.Equal(t, "10.00", c.Score().String())

	c, homework := c.AddItem("Submits homework")
	assert.Equal(t, "5.00", c.Score().String())
	assert.Equal(t, []string{raises, homework}, c.IDs())
	assert.NotEqual(t, raises, homework)
}

func TestMutationsDoNotTouchReceiver(t *testing.T) {
	orig, id := Checklist{}.AddItem("a")
	before := orig

	_ = orig.Toggle(id)
	_, _ = orig.AddItem("b")
	_ = orig.Remove(id)

	if diff := cmp.Diff(before, orig); diff != "" {
		t.Fatalf("receiver mutated (-before +after):\n%s", diff)
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	p := DefaultPlaceholders()
	for _, k := range Kinds {
		inst, err := NewBlank(k, p)
		require.NoError(t, err)

		if diff := cmp.Diff(inst, inst.RemoveElement("missing")); diff != "" {
			t.Errorf("%s: RemoveElement(missing) changed instrument:\n%s", k, diff)
		}
		for _, f := range Fields(k) {
			got, err := SetField(inst, "missing", f, "1")
			if err != nil {
				continue
			}
			if diff := cmp.Diff(inst, got); diff != "" {
				t.Errorf("%s: SetField(missing, %s) changed instrument:\n%s", k, f, diff)
			}
		}
	}
}

func TestNewBlankHasOnePlaceholder(t *testing.T) {
	sequentialIDs(t)
	p := DefaultPlaceholders()

	for _, k := range Kinds {
		inst, err := NewBlank(k, p)
		require.NoError(t, err)
		assert.Equal(t, k, inst.Kind())
		assert.Len(t, inst.IDs(), 1, k)
		assert.Equal(t, p.Titles[k], inst.Meta().Title)
	}

	r, _ := NewBlank(KindRubric, p)
	c := r.(Rubric).Criteria[0]
	assert.Equal(t, 20.0, c.Weight)
	assert.Equal(t, "Excellent", c.Levels.At(4))
	assert.Equal(t, Sentinel, r.Score().String())

	e, _ := NewBlank(KindExam, p)
	assert.Equal(t, QuestionMultipleChoice, e.(Exam).Questions[0].Type)
	assert.Equal(t, "0.00", e.Score().String())

	_, err := NewBlank(Kind("poster"), p)
	assert.Error(t, err)
}

func TestAppendBlankKeepsOrder(t *testing.T) {
	p := DefaultPlaceholders()
	for _, k := range Kinds {
		inst, err := NewBlank(k, p)
		require.NoError(t, err)
		first := inst.IDs()[0]

		inst, added := inst.AppendBlank(p)
		assert.Equal(t, []string{first, added}, inst.IDs(), k)

		inst = inst.RemoveElement(first)
		assert.Equal(t, []string{added}, inst.IDs(), k)
	}
}

func TestRubricAppendUsesAddedTemplate(t *testing.T) {
	p := DefaultPlaceholders()
	inst, id := Rubric{}.AppendBlank(p)
	c, ok := inst.(Rubric).Criterion(id)
	require.True(t, ok)
	assert.Equal(t, 10.0, c.Weight)
	assert.Equal(t, "Level 3", c.Levels.At(3))
	assert.Zero(t, c.SelectedLevel)
}

func TestWithMetaReplacesHeader(t *testing.T) {
	inst, _ := NewBlank(KindExam, DefaultPlaceholders())
	m := Meta{Title: "Fractions quiz", Student: "Ana"}
	got := inst.WithMeta(m)
	assert.Equal(t, m, got.Meta())
	assert.Equal(t, inst.IDs(), got.IDs())
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.ListField())
	}
	_, err := ParseKind("essay")
	assert.Error(t, err)
}
