package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type post struct {
	id     int
	owner  int64
	public bool
}

func (p *post) OwnerID() int64      { return p.owner }
func (p *post) Public() bool        { return p.public }
func (p *post) SetOwnerID(id int64) { p.owner = id }

var (
	alice = Authenticated(1)
	bob   = Authenticated(2)
)

func fixtures() []*post {
	return []*post{
		{id: 1, owner: 1, public: true},
		{id: 2, owner: 1, public: false},
		{id: 3, owner: 2, public: true},
		{id: 4, owner: 2, public: false},
	}
}

func TestAuthenticated(t *testing.T) {
	assert.False(t, Anonymous.IsAuthenticated())
	assert.Equal(t, Anonymous, Authenticated(0))
	assert.Equal(t, Anonymous, Authenticated(-5))
	assert.True(t, alice.IsAuthenticated())
	assert.EqualValues(t, 1, alice.UserID())
}

func TestIsVisibleAnonymous(t *testing.T) {
	for _, p := range fixtures() {
		assert.Equal(t, p.public, IsVisible(p, Anonymous), "post %d", p.id)
	}
}

func TestIsVisibleUsers(t *testing.T) {
	for _, v := range []Viewer{alice, bob} {
		for _, p := range fixtures() {
			want := p.public || p.owner == v.UserID()
			assert.Equal(t, want, IsVisible(p, v), "post %d viewer %d", p.id, v.UserID())
		}
	}
}

func TestOwnershipChecks(t *testing.T) {
	for _, p := range fixtures() {
		owner := Authenticated(p.owner)
		assert.True(t, CanModify(p, owner))
		assert.True(t, CanDelete(p, owner))

		for _, v := range []Viewer{Anonymous, alice, bob} {
			if v == owner {
				continue
			}
			assert.False(t, CanModify(p, v), "post %d viewer %d", p.id, v.UserID())
			assert.False(t, CanDelete(p, v), "post %d viewer %d", p.id, v.UserID())
		}
	}
}

func TestCanCreate(t *testing.T) {
	assert.False(t, CanCreate(Anonymous))
	assert.True(t, CanCreate(bob))
}

func TestAssignOwnerOverridesForgedAuthor(t *testing.T) {
	p := &post{owner: 99}
	require.Equal(t, Allow, AssignOwner(p, bob))
	assert.EqualValues(t, 2, p.owner)

	p = &post{owner: 99}
	assert.Equal(t, Forbidden, AssignOwner(p, Anonymous))
	assert.EqualValues(t, 99, p.owner)
}

func TestFilterListing(t *testing.T) {
	a := &post{id: 1, owner: 1, public: true}
	b := &post{id: 2, owner: 1, public: false}
	items := []*post{a, b}

	assert.Equal(t, []*post{a}, FilterListing(items, Anonymous))
	assert.Equal(t, []*post{a, b}, FilterListing(items, alice))
	assert.Equal(t, []*post{a}, FilterListing(items, bob))
}

func TestFilterListingIdempotentAndOrdered(t *testing.T) {
	items := fixtures()
	for _, v := range []Viewer{Anonymous, alice, bob} {
		once := FilterListing(items, v)
		twice := FilterListing(once, v)
		assert.Equal(t, once, twice)
		for i := 1; i < len(once); i++ {
			assert.Less(t, once[i-1].id, once[i].id)
		}
	}
	assert.Empty(t, FilterListing([]*post(nil), alice))
}

func TestRead(t *testing.T) {
	private := &post{owner: 1}
	assert.Equal(t, NotFound, Read(nil, alice))
	assert.Equal(t, NotFound, Read(private, Anonymous))
	assert.Equal(t, NotFound, Read(private, bob))
	assert.Equal(t, Allow, Read(private, alice))
	assert.Equal(t, Allow, Read(&post{owner: 1, public: true}, Anonymous))
}

func TestWrite(t *testing.T) {
	public := &post{owner: 1, public: true}
	private := &post{owner: 1}

	tests := []struct {
		name string
		item Item
		v    Viewer
		want Decision
	}{
		{"missing", nil, alice, NotFound},
		{"owner public", public, alice, Allow},
		{"owner private", private, alice, Allow},
		{"other public", public, bob, Forbidden},
		{"anonymous public", public, Anonymous, Forbidden},
		{"other private", private, bob, NotFound},
		{"anonymous private", private, Anonymous, NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Write(tt.item, tt.v))
		})
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Allow.Err())
	assert.ErrorIs(t, NotFound.Err(), ErrNotFound)
	assert.ErrorIs(t, Forbidden.Err(), ErrForbidden)
	assert.Equal(t, "not_found", NotFound.String())
}
