package db

import "strconv"

// Location is the path returned to clients after a course is created.
func (c Course) Location() string {
	return "/courses/" + strconv.FormatUint(c.ID, 10)
}

// FullName joins the user's first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
