package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief A quaternion, used to represent rotational orientation. */
type Quaternion Vec4

/**
 * @brief a 4x4 matrix, typically used to represent object transformations.
 * Matrices are row-major and multiply row vectors from the left, so
 * translation lives in Data[12..14] and A.Mul(B) applies A first.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents the transform of an object in the world as a
 * position, rotation and scale. Transforms are values; hierarchies
 * are resolved with Compose, which folds a parent into a child.
 */
type Transform struct {
	/** @brief The position. */
	Position Vec3
	/** @brief The rotation. */
	Rotation Quaternion
	/** @brief The scale. */
	Scale Vec3
}
