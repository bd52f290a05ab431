// Package models defines domain entities and persistence interfaces for the flix catalog client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs decoded from the MyFlix API
//   - [Movie] : Catalog entry with genre and director detail
//   - [User] : Profile of the logged-in user, including the favorites id set
//   - [LoginResult] : Token plus user payload returned by POST /login
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [CachedMovie] : Locally cached catalog entries for offline browsing
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
