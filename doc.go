// Package main provides the entry point of MultiBox.
// It runs a fiber based JSON API for named groups, each owning an ordered list of
// selectable text inputs. Inputs are soft deleted and a bulk save reconciles the
// stored inputs of a group with the posted list inside one gorm transaction.
package main
