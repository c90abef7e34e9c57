// Package mail sends outgoing email over SMTP using the MAIL_* settings.
package mail
