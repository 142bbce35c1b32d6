package organize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mv/tabctl/internal/domain"
)

func tab(id, url string) domain.TabSnapshot {
	return domain.TabSnapshot{ID: domain.TabID(id), URL: url}
}

func ids(tabs []domain.TabSnapshot) []string {
	out := make([]string, len(tabs))
	for i, t := range tabs {
		out[i] = string(t.ID)
	}
	return out
}

func TestGroupByDomainOrdersBuckets(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("1", "https://news.ycombinator.com/item?id=1"),
		tab("2", "https://mail.google.com/inbox"),
		tab("3", "https://github.com/go-rod/rod"),
		tab("4", "https://docs.google.com/doc"),
		tab("5", "https://github.com/spf13/cobra"),
		tab("6", "https://www.google.com/search"),
	}

	got, err := GroupByDomain(tabs)
	require.NoError(t, err)

	// github.com < google.com < ycombinator.com; within google.com the
	// subdomains ascend: docs < mail < www.
	assert.Equal(t, []string{"3", "5", "4", "2", "6", "1"}, ids(got))
}

func TestGroupByDomainStableWithinBucket(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("a", "https://github.com/x"),
		tab("b", "https://github.com/y"),
		tab("c", "https://github.com/z"),
	}
	got, err := GroupByDomain(tabs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestGroupByDomainIsPermutation(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("1", "https://b.com/1"),
		tab("2", "https://a.com/2"),
		tab("3", "https://c.com/3"),
		tab("4", "https://a.com/4"),
	}
	got, err := GroupByDomain(tabs)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(tabs), ids(got))
	assert.Len(t, got, len(tabs))
}

func TestGroupByDomainIdempotent(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("1", "https://mail.google.com/"),
		tab("2", "https://github.com/"),
		tab("3", "https://docs.google.com/"),
	}
	once, err := GroupByDomain(tabs)
	require.NoError(t, err)
	twice, err := GroupByDomain(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestGroupByDomainShortHostname(t *testing.T) {
	got, err := GroupByDomain([]domain.TabSnapshot{
		tab("1", "http://localhost/admin"),
		tab("2", "https://github.com/"),
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGroupByDomainBadURLFailsWholePass(t *testing.T) {
	_, err := GroupByDomain([]domain.TabSnapshot{
		tab("1", "https://ok.example.com/"),
		tab("2", "http://bad url with spaces"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestFindDuplicatesKeepsFirstSeen(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("1", "http://x.com/a"),
		tab("2", "http://x.com/a"),
		tab("3", "http://y.com/b"),
	}
	got := FindDuplicates(tabs, "3")
	assert.Equal(t, map[domain.TabID]bool{"2": true}, got)
}

func TestFindDuplicatesActiveOverride(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("1", "http://x.com/a"),
		tab("2", "http://x.com/a"),
	}
	got := FindDuplicates(tabs, "2")
	assert.Equal(t, map[domain.TabID]bool{"1": true}, got)
}

func TestFindDuplicatesActiveNeverRemoved(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("1", "http://x.com/a"),
		tab("2", "http://x.com/a"),
		tab("3", "http://x.com/a"),
	}
	for _, active := range []domain.TabID{"1", "2", "3"} {
		got := FindDuplicates(tabs, active)
		assert.False(t, got[active], "active %s must be kept", active)
		assert.Len(t, got, 2)
	}
}

func TestFindDuplicatesCaseInsensitive(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("1", "http://X.com/A"),
		tab("2", "http://x.com/a"),
	}
	got := FindDuplicates(tabs, "1")
	assert.Equal(t, map[domain.TabID]bool{"2": true}, got)
}

func TestShufflePreservesMembers(t *testing.T) {
	tabs := []domain.TabSnapshot{
		tab("1", "https://a.com/"),
		tab("2", "https://b.com/"),
		tab("3", "https://c.com/"),
		tab("4", "https://d.com/"),
	}
	got := Shuffle(tabs)
	assert.Len(t, got, len(tabs))
	assert.ElementsMatch(t, ids(tabs), ids(got))
	// input untouched
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(tabs))
}

func TestShuffleDegenerateInputs(t *testing.T) {
	assert.Empty(t, Shuffle(nil))
	one := []domain.TabSnapshot{tab("1", "https://a.com/")}
	assert.Equal(t, one, Shuffle(one))
}

func TestSelectedOrActive(t *testing.T) {
	active := tab("9", "https://active.example.com/")
	two := []domain.TabSnapshot{tab("1", "https://a.com/"), tab("2", "https://b.com/")}

	assert.Equal(t, two, SelectedOrActive(two, active))
	assert.Equal(t, []domain.TabSnapshot{active}, SelectedOrActive(two[:1], active))
	assert.Equal(t, []domain.TabSnapshot{active}, SelectedOrActive(nil, active))
}
