package scriptexec

import (
	"math/rand"
	"testing"
)

func TestNewConditionStack(t *testing.T) {
	c := NewConditionStack()

	if !c.AllTrue() {
		t.Error("Expected empty stack to be all true")
	}
	if c.Len() != 0 {
		t.Errorf("Expected size 0, got %d", c.Len())
	}
}

func TestConditionStackPush(t *testing.T) {
	t.Run("pushing true keeps all true", func(t *testing.T) {
		c := NewConditionStack()
		c.Push(true)
		c.Push(true)

		if !c.AllTrue() {
			t.Error("Expected all true")
		}
		if c.Len() != 2 {
			t.Errorf("Expected size 2, got %d", c.Len())
		}
	})

	t.Run("pushing false breaks all true", func(t *testing.T) {
		c := NewConditionStack()
		c.Push(true)
		c.Push(false)

		if c.AllTrue() {
			t.Error("Expected not all true")
		}
	})

	t.Run("true above false stays not all true", func(t *testing.T) {
		c := NewConditionStack()
		c.Push(false)
		c.Push(true)

		if c.AllTrue() {
			t.Error("Expected not all true")
		}
	})
}

func TestConditionStackPop(t *testing.T) {
	t.Run("empty pop is a no-op", func(t *testing.T) {
		c := NewConditionStack()
		if c.Pop() {
			t.Error("Pop on empty stack should return false")
		}
	})

	t.Run("popping the only false restores all true", func(t *testing.T) {
		c := NewConditionStack()
		c.Push(true)
		c.Push(false)

		if !c.Pop() {
			t.Fatal("Pop failed")
		}
		if !c.AllTrue() {
			t.Error("Expected all true after removing the only false")
		}
	})

	t.Run("popping true above a false keeps not all true", func(t *testing.T) {
		c := NewConditionStack()
		c.Push(false)
		c.Push(true)

		c.Pop()
		if c.AllTrue() {
			t.Error("Expected not all true while the false remains")
		}
	})
}

func TestConditionStackToggleTop(t *testing.T) {
	t.Run("empty toggle is a no-op", func(t *testing.T) {
		c := NewConditionStack()
		if c.ToggleTop() {
			t.Error("ToggleTop on empty stack should return false")
		}
	})

	t.Run("all true becomes not all true", func(t *testing.T) {
		c := NewConditionStack()
		c.Push(true)

		if !c.ToggleTop() {
			t.Fatal("ToggleTop failed")
		}
		if c.AllTrue() {
			t.Error("Expected not all true after toggling the top")
		}
	})

	t.Run("toggling the first false restores all true", func(t *testing.T) {
		c := NewConditionStack()
		c.Push(true)
		c.Push(false)

		c.ToggleTop()
		if !c.AllTrue() {
			t.Error("Expected all true after toggling the only false")
		}
	})

	t.Run("toggling above a lower false is unobservable", func(t *testing.T) {
		c := NewConditionStack()
		c.Push(false)
		c.Push(true)

		c.ToggleTop()
		if c.AllTrue() {
			t.Error("Expected not all true while a lower false remains")
		}
		c.ToggleTop()
		if c.AllTrue() {
			t.Error("Toggling back should still be masked by the lower false")
		}
	})
}

// boolStackModel is the naive reference implementation: a literal vector of
// booleans supporting the same observable query.
type boolStackModel []bool

func (m *boolStackModel) allTrue() bool {
	for _, v := range *m {
		if !v {
			return false
		}
	}
	return true
}

func (m *boolStackModel) push(v bool) {
	*m = append(*m, v)
}

func (m *boolStackModel) pop() bool {
	if len(*m) == 0 {
		return false
	}
	*m = (*m)[:len(*m)-1]
	return true
}

func (m *boolStackModel) toggleTop() bool {
	if len(*m) == 0 {
		return false
	}
	(*m)[len(*m)-1] = !(*m)[len(*m)-1]
	return true
}

func TestConditionStackMatchesReferenceModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		c := NewConditionStack()
		model := &boolStackModel{}

		for step := 0; step < 1000; step++ {
			var got, want bool
			switch rng.Intn(4) {
			case 0:
				v := rng.Intn(2) == 0
				c.Push(v)
				model.push(v)
				got, want = true, true
			case 1:
				got = c.Pop()
				want = model.pop()
			case 2:
				got = c.ToggleTop()
				want = model.toggleTop()
			case 3:
				got = c.AllTrue()
				want = model.allTrue()
			}

			if got != want {
				t.Fatalf("trial %d step %d: result %v, model says %v", trial, step, got, want)
			}
			if c.AllTrue() != model.allTrue() {
				t.Fatalf("trial %d step %d: AllTrue %v, model says %v",
					trial, step, c.AllTrue(), model.allTrue())
			}
			if c.Len() != len(*model) {
				t.Fatalf("trial %d step %d: size %d, model has %d",
					trial, step, c.Len(), len(*model))
			}
		}
	}
}
