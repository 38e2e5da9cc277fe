// Package layout holds the page shell shared by every web page.
package layout

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData is the data every page needs for the shell
type PageData struct {
	Title       string
	DisplayName string // empty when signed out
	Flash       *FlashMessage
}

func pageTitle(title string) string {
	if title == "" {
		return "Pickleball Organiser"
	}
	return title + " | Pickleball Organiser"
}
