package types

// Setting keys resolved eagerly at site construction. Anything else is
// looked up lazily on first read.
const (
	KeyHomeURL     = "home_url"
	KeySiteURL     = "site_url"
	KeyName        = "site_name"
	KeyDescription = "site_description"
	KeyAdminEmail  = "admin_email"
	KeyCharset     = "charset"
	KeyLanguage    = "language"
	KeyPingbackURL = "pingback_url"
	KeyFeedRDF     = "feed_rdf_url"
	KeyFeedRSS     = "feed_rss_url"
	KeyFeedRSS2    = "feed_rss2_url"
	KeyFeedAtom    = "feed_atom_url"
	KeyTheme       = "theme"
	KeySiteIcon    = "site_icon"
)

const (
	DefaultCharset  = "UTF-8"
	DefaultLanguage = "en-US"
)

// Value is a resolved setting. Present is false when the store has no
// entry for the key; that is a normal outcome, not an error.
type Value struct {
	Val     string
	Present bool
}

// Some returns a present value.
func Some(v string) Value { return Value{Val: v, Present: true} }

// None is the confirmed-absent value.
var None = Value{}
