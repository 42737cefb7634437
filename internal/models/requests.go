package models

// AddBookRequest is the payload an admin submits to create a catalog entry.
type AddBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Copies      int    `json:"copies"`
	Category    string `json:"category"`
	Img         string `json:"img"`
}

// ReviewRequest is the payload a user submits when reviewing a book.
type ReviewRequest struct {
	BookID            string  `json:"bookId"`
	Rating            float64 `json:"rating"`
	ReviewDescription string  `json:"reviewDescription"`
}

// PostMessageRequest opens a new question thread with the administrators.
type PostMessageRequest struct {
	Title    string `json:"title"`
	Question string `json:"question"`
}

// AdminAnswerRequest is an admin's response that closes a question thread.
type AdminAnswerRequest struct {
	ID       string `json:"id"`
	Response string `json:"response"`
}

// CurrentLoan pairs a checked-out book with the days remaining until its
// due date. DaysLeft is negative once the loan is overdue.
type CurrentLoan struct {
	Book     Book `json:"book"`
	DaysLeft int  `json:"daysLeft"`
}
