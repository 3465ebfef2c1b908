package item

// Row is one generated record. Values are returned in the order of the owning
// generator's Fields.
type Row interface {
	Values() []any
}

// PostFields is the column order of posts rows.
var PostFields = []string{
	"post_author", "post_date", "post_date_gmt", "post_content", "post_title", "post_excerpt",
	"post_name", "to_ping", "pinged", "post_modified", "post_modified_gmt",
	"post_content_filtered", "guid", "post_type",
}

// PostRow is a generated posts row.
type PostRow struct {
	Author          int64
	Date            string
	DateGMT         string
	Content         string
	Title           string
	Excerpt         string
	Name            string
	ToPing          string
	Pinged          string
	Modified        string
	ModifiedGMT     string
	ContentFiltered string
	GUID            string
	Type            string
}

// Values implements Row.
func (r PostRow) Values() []any {
	return []any{
		r.Author, r.Date, r.DateGMT, r.Content, r.Title, r.Excerpt,
		r.Name, r.ToPing, r.Pinged, r.Modified, r.ModifiedGMT,
		r.ContentFiltered, r.GUID, r.Type,
	}
}

// CommentFields is the column order of comments rows in download mode, where the
// database assigns comment_ID on import.
var CommentFields = []string{
	"comment_post_ID", "comment_author", "comment_author_email", "comment_author_url",
	"comment_author_IP", "comment_date", "comment_date_gmt", "comment_content",
	"comment_karma", "comment_approved", "comment_agent", "comment_type",
	"comment_parent", "user_id",
}

// CommentLoadFields is the column order of bulk loaded comments rows. The explicit
// comment_ID keeps comment_parent exact whatever the table's AUTO_INCREMENT is.
var CommentLoadFields = append([]string{"comment_ID"}, CommentFields...)

// CommentRow is a generated comments row.
type CommentRow struct {
	// ID is emitted only when WithID is set.
	ID          int64
	WithID      bool
	PostID      int64
	Author      string
	AuthorEmail string
	AuthorURL   string
	AuthorIP    string
	Date        string
	DateGMT     string
	Content     string
	Karma       int
	Approved    string
	Agent       string
	Type        string
	Parent      int64
	UserID      int64
}

// Values implements Row.
func (r CommentRow) Values() []any {
	values := []any{
		r.PostID, r.Author, r.AuthorEmail, r.AuthorURL,
		r.AuthorIP, r.Date, r.DateGMT, r.Content,
		r.Karma, r.Approved, r.Agent, r.Type,
		r.Parent, r.UserID,
	}
	if r.WithID {
		return append([]any{r.ID}, values...)
	}
	return values
}

// UserFields is the column order of users rows.
var UserFields = []string{
	"user_login", "user_pass", "user_nicename", "user_email", "user_url",
	"user_registered", "user_activation_key", "user_status", "display_name",
}

// UserRow is a generated users row.
type UserRow struct {
	Login         string
	Pass          string
	Nicename      string
	Email         string
	URL           string
	Registered    string
	ActivationKey string
	Status        int
	DisplayName   string
}

// Values implements Row.
func (r UserRow) Values() []any {
	return []any{
		r.Login, r.Pass, r.Nicename, r.Email, r.URL,
		r.Registered, r.ActivationKey, r.Status, r.DisplayName,
	}
}
