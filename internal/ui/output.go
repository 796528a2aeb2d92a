package ui

import (
	"fmt"
	"io"
)

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render("✔ "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render("✖ "+msg))
}
