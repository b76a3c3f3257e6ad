package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverLines() []Line {
	return []Line{
		{ID: "l1", VariantID: "v1", Quantity: 1},
		{ID: "l2", VariantID: "v2", Quantity: 2},
	}
}

func TestApplyPatch(t *testing.T) {
	l := Line{ID: "l1", Quantity: 2}

	assert.Equal(t, EffectiveLine{Line: l}, ApplyPatch(l, nil))

	rm := RemovePatch("l1")
	got := ApplyPatch(l, &rm)
	assert.True(t, got.Hidden)
	assert.True(t, got.Pending)
	assert.Equal(t, 2, got.Quantity)

	qp := QuantityPatch("l1", 5)
	got = ApplyPatch(l, &qp)
	assert.False(t, got.Hidden)
	assert.Equal(t, 5, got.Quantity)
}

func TestQuantityPatchZeroRemoves(t *testing.T) {
	p := QuantityPatch("l1", 0)
	assert.True(t, p.Remove)
	assert.Nil(t, p.Quantity)
}

func TestReconcile_RemoveKeepsLineUntilServerConfirms(t *testing.T) {
	ps := PatchSet{}
	ps.Put(RemovePatch("l1"))

	got := Reconcile(serverLines(), ps)
	require.Len(t, got, 2, "hidden line must stay in the list")
	assert.Equal(t, "l1", got[0].ID)
	assert.True(t, got[0].Hidden)
	assert.False(t, got[1].Hidden)
	assert.Len(t, ps, 1, "patch survives while the server still has the line")

	got = Reconcile(serverLines()[1:], ps)
	require.Len(t, got, 1)
	assert.Empty(t, ps, "server dropped the line, patch cleared")
}

func TestReconcile_QuantityClearedWhenReflected(t *testing.T) {
	ps := PatchSet{}
	ps.Put(QuantityPatch("l2", 4))

	got := Reconcile(serverLines(), ps)
	assert.Equal(t, 4, got[1].Quantity)
	assert.True(t, got[1].Pending)

	lines := serverLines()
	lines[1].Quantity = 4
	got = Reconcile(lines, ps)
	assert.Equal(t, 4, got[1].Quantity)
	assert.False(t, got[1].Pending)
	assert.Empty(t, ps)
}

func TestPatchSet_LastWriteWins(t *testing.T) {
	ps := PatchSet{}
	first := QuantityPatch("l1", 3)
	first.Seq = 1
	second := QuantityPatch("l1", 7)
	second.Seq = 2
	ps.Put(first)
	ps.Put(second)

	require.Len(t, ps, 1)
	assert.Equal(t, 7, *ps["l1"].Quantity)

	assert.False(t, ps.Release("l1", 1), "older resolution must not clear the newer patch")
	assert.True(t, ps.Release("l1", 2))
	assert.Empty(t, ps)
}

func TestPending_BeginRelease(t *testing.T) {
	p := NewPending()
	a := p.Begin("c1", QuantityPatch("l1", 3))
	b := p.Begin("c1", RemovePatch("l1"))
	require.Greater(t, b[0].Seq, a[0].Seq)

	got := p.Reconcile("c1", serverLines())
	assert.True(t, got[0].Hidden, "second patch overwrote the first")

	p.Release("c1", a)
	assert.Equal(t, 1, p.Len("c1"))
	p.Release("c1", b)
	assert.Equal(t, 0, p.Len("c1"))

	got = p.Reconcile("c1", serverLines())
	assert.False(t, got[0].Hidden)
}

func TestPending_Concurrent(t *testing.T) {
	p := NewPending()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patches := p.Begin("c1", QuantityPatch("l1", i+1))
			_ = p.Reconcile("c1", serverLines())
			p.Release("c1", patches)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, p.Len("c1"))
}
