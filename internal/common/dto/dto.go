package dto

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	UUID     string `json:"uuid"`
}

type Post struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Text     string `json:"text"`
	UUID     string `json:"uuid"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

type Like struct {
	UserID int64  `json:"user_id"`
	PostID int64  `json:"post_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

type Activity struct {
	UserID *int64 `json:"user_id"`
	PostID *int64 `json:"post_id"`
	Action string `json:"action"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

type Message struct {
	Message string `json:"message"`
}
