package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityDomainEnumeratesEachValueExactlyOnce(t *testing.T) {
	domain := NewEntityDomain(3)

	assert.Equal(t, 3, domain.Size())

	seen := make(map[Entity]int)
	for _, e := range domain.Entities() {
		seen[e]++
	}
	assert.Len(t, seen, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, seen[NewEntity(i)], "entity E%d should be enumerated exactly once", i)
	}
}

func TestEntityDomainContains(t *testing.T) {
	domain := NewEntityDomain(2)

	assert.True(t, domain.Contains(NewEntity(0)))
	assert.True(t, domain.Contains(NewEntity(1)))
	assert.False(t, domain.Contains(NewEntity(2)))
	assert.False(t, domain.Contains(NewEntity(-1)))
}

func TestEntityEqualityIsStructural(t *testing.T) {
	assert.Equal(t, NewEntity(1), NewEntity(1))
	assert.NotEqual(t, NewEntity(0), NewEntity(1))
	assert.Equal(t, "E1", NewEntity(1).String())
}

func TestAllOutcomesIsTheClosedDomain(t *testing.T) {
	outcomes := AllOutcomes()

	assert.Equal(t, []Outcome{OutcomePositive, OutcomeNegative}, outcomes)

	seen := make(map[Outcome]int)
	for _, o := range outcomes {
		seen[o]++
	}
	assert.Len(t, seen, 2)
}

func TestParseOutcomeRoundTrip(t *testing.T) {
	for _, o := range AllOutcomes() {
		parsed, err := ParseOutcome(o.String())
		assert.NoError(t, err)
		assert.Equal(t, o, parsed)
	}

	_, err := ParseOutcome("sideways")
	assert.Error(t, err)
}
