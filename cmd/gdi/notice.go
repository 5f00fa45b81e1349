package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/greaterdiscord/installer/internal/messages"
)

// noticeNotifier prints restart and kill notices. It never waits for input.
type noticeNotifier struct {
	out io.Writer
}

func (n noticeNotifier) RestartNotice() {
	n.print(color.New(color.FgYellow, color.Bold), messages.RestartNoticeTitle, messages.RestartNoticeMessage)
}

func (n noticeNotifier) KillNotice() {
	n.print(color.New(color.FgRed, color.Bold), messages.KillNoticeTitle, messages.KillNoticeMessage)
}

func (n noticeNotifier) print(title *color.Color, heading string, body string) {
	_, _ = fmt.Fprintf(n.out, messages.NoticeFmt, title.Sprint(heading), body)
}
