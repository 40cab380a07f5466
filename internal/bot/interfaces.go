package bot

import "gopkg.in/telebot.v4"

type API interface {
	// Send delivers a message of any supported type to the recipient.
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}
