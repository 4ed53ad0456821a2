package blogservice

import (
	"fmt"
	"math"

	"github.com/sushihentaime/bloglist/internal/common"
)

// Title is checked before author so a request missing both reports the title.
func validateBlog(v *common.Validator, title, author string, likes int) {
	v.Check(title != "", "title", "title missing")
	if !v.Valid() {
		return
	}
	v.Check(author != "", "author", "author missing")
	validateLikes(v, likes)
}

// likes is stored in an INTEGER column.
func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "likes must not be negative")
	v.Check(likes <= math.MaxInt32, "likes", fmt.Sprintf("likes must be at most %d", math.MaxInt32))
}

func validateID(v *common.Validator, id int) {
	v.Check(id > 0, "id", "malformatted id")
}
