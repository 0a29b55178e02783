/* models.go
 * This file contain the structs that are shared between sub packages
 * Authors: Zachary Bower
 */

package shared

// User identifies the person making a prediction. UserID is opaque and only compared for equality
type User struct {
	UserID   string
	Username string
}
