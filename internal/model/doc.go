// Package model holds the usage-statistics types shared by the data
// clients, the JSON cache and the UI.
package model
