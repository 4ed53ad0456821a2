package blogservice

// TotalLikes sums the likes of blogs.
func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the first blog with the most likes, or nil if blogs is empty.
func FavoriteBlog(blogs []Blog) *Blog {
	if len(blogs) == 0 {
		return nil
	}

	favorite := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > favorite.Likes {
			favorite = b
		}
	}

	return &favorite
}

// MostBlogs returns the author who wrote the most blogs. Ties go to the author seen first.
func MostBlogs(blogs []Blog) *AuthorStat {
	author, count, ok := topAuthor(blogs, func(Blog) int { return 1 })
	if !ok {
		return nil
	}

	return &AuthorStat{Author: author, Count: count}
}

// MostLikes returns the author whose blogs have the most likes combined. Ties go to the author seen first.
func MostLikes(blogs []Blog) *AuthorLikes {
	author, likes, ok := topAuthor(blogs, func(b Blog) int { return b.Likes })
	if !ok {
		return nil
	}

	return &AuthorLikes{Author: author, Likes: likes}
}

// Summarize computes every statistic over blogs.
func Summarize(blogs []Blog) Stats {
	return Stats{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

// topAuthor groups blogs by exact author and returns the group with the largest sum of weight.
// Groups are kept in first-appearance order so that ties are resolved the same way on every run.
func topAuthor(blogs []Blog, weight func(Blog) int) (string, int, bool) {
	if len(blogs) == 0 {
		return "", 0, false
	}

	totals := make(map[string]int)
	var order []string

	for _, b := range blogs {
		if _, seen := totals[b.Author]; !seen {
			order = append(order, b.Author)
		}
		totals[b.Author] += weight(b)
	}

	best := order[0]
	for _, author := range order[1:] {
		if totals[author] > totals[best] {
			best = author
		}
	}

	return best, totals[best], true
}
