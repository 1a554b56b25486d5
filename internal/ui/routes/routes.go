// Package routes declares the navigable pages of the ecosort UI.
//
// Each route binds a path pattern and a unique name to a deferred loader. Loaders run on the first
// navigation to their route, so a page's view (and whatever it needs to prepare, e.g. templates) is
// only built when somebody visits it. Paths that match no route resolve to an explicit NotFound route.
package routes

// Route names
const (
	Home       = "Home"
	Search     = "Search"
	Category   = "Category"
	Knowledge  = "Knowledge"
	Guide      = "Guide"
	News       = "News"
	Quiz       = "Quiz"
	Feedback   = "Feedback"
	NearbyBins = "NearbyBins"
	NotFound   = "NotFound"
)

// Provider supplies the loader for each named route
type Provider interface {
	Loader(name string) Loader
}

// Default builds the ecosort route table
func Default(p Provider, opts ...Option) (*Table, error) {
	return New([]Route{
		{Pattern: "/", Name: Home, Load: p.Loader(Home)},
		{Pattern: "/search", Name: Search, Load: p.Loader(Search)},
		{Pattern: "/category/:name", Name: Category, Load: p.Loader(Category)},
		{Pattern: "/knowledge", Name: Knowledge, Load: p.Loader(Knowledge)},
		{Pattern: "/guide", Name: Guide, Load: p.Loader(Guide)},
		{Pattern: "/news", Name: News, Load: p.Loader(News)},
		{Pattern: "/quiz", Name: Quiz, Load: p.Loader(Quiz)},
		{Pattern: "/feedback", Name: Feedback, Load: p.Loader(Feedback)},
		{Pattern: "/nearby", Name: NearbyBins, Load: p.Loader(NearbyBins)},
	}, Route{Name: NotFound, Load: p.Loader(NotFound)}, opts...)
}
