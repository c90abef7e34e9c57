// Package couchdb implements the store interfaces on top of CouchDB using
// the kivik client. Users and log entries live in one database and are told
// apart by their doctype field.
package couchdb
