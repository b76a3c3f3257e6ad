package cart

import "sync"

// Patch is an unconfirmed mutation layered over a server line until the
// server reflects it. Remove wins over Quantity.
type Patch struct {
	LineID   string
	Remove   bool
	Quantity *int
	// Seq orders patches. A resolution only releases the patch it created.
	Seq uint64
}

func RemovePatch(lineID string) Patch { return Patch{LineID: lineID, Remove: true} }

func QuantityPatch(lineID string, qty int) Patch {
	if qty <= 0 {
		return RemovePatch(lineID)
	}
	return Patch{LineID: lineID, Quantity: &qty}
}

// reflectedBy reports whether the server state already matches the patch.
// A nil line means the server no longer has it.
func (p Patch) reflectedBy(line *Line) bool {
	if p.Remove {
		return line == nil
	}
	if line == nil {
		return true
	}
	return p.Quantity == nil || line.Quantity == *p.Quantity
}

// EffectiveLine is what gets rendered: the server line with its patch
// applied. Hidden lines stay in the list so forms bound to them survive.
type EffectiveLine struct {
	Line
	Hidden  bool
	Pending bool
}

// ApplyPatch overlays p on line. A nil patch yields the line unchanged.
func ApplyPatch(line Line, p *Patch) EffectiveLine {
	el := EffectiveLine{Line: line}
	if p == nil {
		return el
	}
	el.Pending = true
	switch {
	case p.Remove:
		el.Hidden = true
	case p.Quantity != nil:
		el.Quantity = *p.Quantity
	}
	return el
}

// PatchSet holds at most one patch per line. A newer patch for the same line
// replaces the older one.
type PatchSet map[string]Patch

func (ps PatchSet) Put(p Patch) { ps[p.LineID] = p }

// Release drops the patch for lineID if it is still the one with seq.
func (ps PatchSet) Release(lineID string, seq uint64) bool {
	cur, ok := ps[lineID]
	if !ok || cur.Seq != seq {
		return false
	}
	delete(ps, lineID)
	return true
}

// Reconcile returns effective lines in server order and clears every patch
// the server lines already reflect.
func Reconcile(lines []Line, ps PatchSet) []EffectiveLine {
	out := make([]EffectiveLine, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for i := range lines {
		l := lines[i]
		seen[l.ID] = struct{}{}
		p, ok := ps[l.ID]
		if !ok {
			out = append(out, ApplyPatch(l, nil))
			continue
		}
		if p.reflectedBy(&l) {
			delete(ps, l.ID)
			out = append(out, ApplyPatch(l, nil))
			continue
		}
		out = append(out, ApplyPatch(l, &p))
	}
	for id := range ps {
		if _, ok := seen[id]; !ok {
			delete(ps, id)
		}
	}
	return out
}

// Pending tracks in-flight patches per cart so a read that races a mutation
// renders the presumed outcome.
type Pending struct {
	mu    sync.Mutex
	seq   uint64
	carts map[string]PatchSet
}

func NewPending() *Pending {
	return &Pending{carts: map[string]PatchSet{}}
}

// Begin stamps each patch with a fresh sequence number and records it,
// replacing any older patch for the same line. The stamped patches are
// returned for Release.
func (p *Pending) Begin(cartID string, patches ...Patch) []Patch {
	p.mu.Lock()
	defer p.mu.Unlock()
	ps, ok := p.carts[cartID]
	if !ok {
		ps = PatchSet{}
		p.carts[cartID] = ps
	}
	out := make([]Patch, len(patches))
	for i, pt := range patches {
		p.seq++
		pt.Seq = p.seq
		ps.Put(pt)
		out[i] = pt
	}
	return out
}

// Release is called once the mutation that began patches has resolved,
// whether it succeeded or failed. Patches overwritten in the meantime are
// left alone.
func (p *Pending) Release(cartID string, patches []Patch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ps, ok := p.carts[cartID]
	if !ok {
		return
	}
	for _, pt := range patches {
		ps.Release(pt.LineID, pt.Seq)
	}
	if len(ps) == 0 {
		delete(p.carts, cartID)
	}
}

// Reconcile overlays the cart's pending patches on lines.
func (p *Pending) Reconcile(cartID string, lines []Line) []EffectiveLine {
	p.mu.Lock()
	defer p.mu.Unlock()
	ps := p.carts[cartID]
	if ps == nil {
		return Reconcile(lines, PatchSet{})
	}
	out := Reconcile(lines, ps)
	if len(ps) == 0 {
		delete(p.carts, cartID)
	}
	return out
}

// Len reports the number of pending patches for a cart.
func (p *Pending) Len(cartID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.carts[cartID])
}
