package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/session"
)

// displayName picks the name shown on outgoing posts: the configured
// profile name when set, the handle otherwise.
func displayName(state session.State) string {
	if state.Name != "" {
		return state.Name
	}
	return state.Handle
}

// mediaDescriber resolves a pinned content id to its gateway URL and,
// when the probe succeeds, its kind.
type mediaDescriber func(cid string) (url string, kind models.MediaKind)

// renderTweets prints a timeline with whatever engagement state
// resolved. Unresolved counters render as "?" instead of a misleading
// zero.
func renderTweets(out io.Writer, tweets []models.Tweet, eng map[string]models.Engagement, media mediaDescriber) {
	for i, tweet := range tweets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		renderTweet(out, tweet, eng, media)
	}
}

func renderTweet(out io.Writer, tweet models.Tweet, eng map[string]models.Engagement, media mediaDescriber) {
	name := tweet.Name
	if name == "" {
		name = tweet.Author
	}
	fmt.Fprintf(out, "[%s] %s (%s) %s\n", tweet.ID, name, tweet.AuthorID, tweet.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "  %s\n", tweet.Content)
	if tweet.MediaCID != "" && media != nil {
		fmt.Fprintf(out, "  %s\n", mediaLine(media, tweet.MediaCID))
	}

	entry, ok := eng[tweet.ID]
	if !ok {
		return
	}
	fmt.Fprintf(out, "  likes %s%s  comments %s%s  reposts %s%s\n",
		counter(entry.Likes, entry.LikesOK), youMark(entry.Liked, entry.LikedOK),
		counter(entry.Comments, entry.CommentsOK), youMark(entry.Commented, entry.CommentedOK),
		counter(entry.Reposts, entry.RepostsOK), youMark(entry.Reposted, entry.RepostedOK),
	)
}

// mediaLine labels the attachment with its probed kind, falling back
// to the bare URL when the probe resolved nothing.
func mediaLine(media mediaDescriber, cid string) string {
	url, kind := media(cid)
	if kind == models.MediaKindNone {
		return fmt.Sprintf("media: %s", url)
	}
	return fmt.Sprintf("media (%s): %s", kind, url)
}

func counter(n int64, ok bool) string {
	if !ok {
		return "?"
	}
	return strconv.FormatInt(n, 10)
}

func youMark(active, ok bool) string {
	if ok && active {
		return " (you)"
	}
	return ""
}

func renderComments(out io.Writer, comments []models.Comment, media mediaDescriber) {
	for _, c := range comments {
		name := c.Name
		if name == "" {
			name = c.Author
		}
		fmt.Fprintf(out, "  ↳ %s (%s) %s\n", name, c.CommenterID, c.Timestamp.Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "    %s\n", c.Content)
		if c.MediaCID != "" && media != nil {
			fmt.Fprintf(out, "    %s\n", mediaLine(media, c.MediaCID))
		}
	}
}
