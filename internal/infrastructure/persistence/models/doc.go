// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model converts itself with
// ToDomain and FromDomain, and repositories only ever store models.
//
// Times are written in UTC so that sqlite, which stores them as text, orders
// them chronologically.
package models
