// Package core holds identifier types shared by the clustering and graph packages.
package core
