package market

// Likes is the ordered set of liked listing titles.
type Likes struct {
	titles []string
}

// NewLikes builds a set from stored titles, dropping duplicates.
func NewLikes(titles []string) *Likes {
	l := &Likes{}
	for _, t := range titles {
		if !l.Has(t) {
			l.titles = append(l.titles, t)
		}
	}
	return l
}

func (l *Likes) Has(title string) bool {
	for _, t := range l.titles {
		if t == title {
			return true
		}
	}
	return false
}

// Toggle adds or removes title and returns whether it is now liked.
func (l *Likes) Toggle(title string) bool {
	for i, t := range l.titles {
		if t == title {
			l.titles = append(l.titles[:i:i], l.titles[i+1:]...)
			return false
		}
	}
	l.titles = append(l.titles, title)
	return true
}

// Titles returns a copy in insertion order.
func (l *Likes) Titles() []string {
	return append([]string{}, l.titles...)
}

func (l *Likes) Len() int {
	return len(l.titles)
}
