package models

// Overflow-menu entry titles. Pin and unpin swap in place when the pin state
// of a post is toggled.
const (
	MenuItemPin    = "Pin"
	MenuItemUnpin  = "Unpin"
	MenuItemDelete = "Delete"
	MenuItemReport = "Report"
)

// MenuItem is a single entry in a post's overflow menu.
type MenuItem struct {
	Title string
}

// DefaultMenuItems builds the overflow menu for a post, with the pin entry
// matching the current pin state.
func DefaultMenuItems(pinned bool) []MenuItem {
	pin := MenuItemPin
	if pinned {
		pin = MenuItemUnpin
	}
	return []MenuItem{{Title: pin}, {Title: MenuItemDelete}, {Title: MenuItemReport}}
}

// PostView is a server-confirmed post as displayed in the feed. Values are
// immutable: mutations produce modified copies via the With* constructors, so
// the displayed list never aliases an in-flight network payload.
//
// FromPostLiked, FromPostSaved and FromVideoAction are transient flags that
// suppress redundant animation when the update originated from the user's own
// action; they are cleared by the next unrelated mutation.
type PostView struct {
	ID            string
	UserID        string
	Text          string
	CreatedAt     int64
	LikesCount    int
	CommentsCount int
	IsLiked       bool
	IsSaved       bool
	IsPinned      bool
	MenuItems     []MenuItem

	FromPostLiked   bool
	FromPostSaved   bool
	FromVideoAction bool
}

// WithLiked returns a copy with the like state and count updated and the
// self-triggered-like flag set.
func (p PostView) WithLiked(liked bool, likesCount int) PostView {
	c := p.clone()
	c.IsLiked = liked
	c.LikesCount = likesCount
	c.FromPostLiked = true
	return c
}

// WithSaved returns a copy with the save state toggled to the given value and
// the self-triggered-save flag set.
func (p PostView) WithSaved(saved bool) PostView {
	c := p.clone()
	c.IsSaved = saved
	c.FromPostSaved = true
	return c
}

// WithPinned returns a copy with the pin state updated and the pin/unpin
// entry in the overflow menu swapped accordingly. The list position of the
// post is not affected.
func (p PostView) WithPinned(pinned bool) PostView {
	c := p.clone()
	c.IsPinned = pinned
	from, to := MenuItemPin, MenuItemUnpin
	if !pinned {
		from, to = MenuItemUnpin, MenuItemPin
	}
	for i := range c.MenuItems {
		if c.MenuItems[i].Title == from {
			c.MenuItems[i].Title = to
		}
	}
	return c
}

// WithoutTransientFlags returns a copy with all animation-suppression flags
// cleared.
func (p PostView) WithoutTransientFlags() PostView {
	c := p.clone()
	c.FromPostLiked = false
	c.FromPostSaved = false
	c.FromVideoAction = false
	return c
}

func (p PostView) clone() PostView {
	c := p
	c.MenuItems = make([]MenuItem, len(p.MenuItems))
	copy(c.MenuItems, p.MenuItems)
	return c
}
