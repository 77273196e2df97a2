package revel

var fetchCategoryListQuery = `
  query fetchCategoryList($storeId: Int!, $menuMode: MenuModeTypeChoices!) {
    categories(establishmentId: $storeId, menuMode: $menuMode) {
      id
      name
      subcategories {
        id
        name
        __typename
      }
      __typename
    }
  }
`

var productListQuery = `
  query productList(
    $categoryId: Int!
    $orderTime: SchedulingDataType!
    $timezone: String!
    $menuMode: MenuModeTypeChoices!
  ) {
    products(categoryId: $categoryId, schedulingData: $orderTime, timezone: $timezone, menuMode: $menuMode) {
      availability {
        isAvailable
        nextAvailableDate
        nextAvailableTimeInterval {
          intervalFrom
          intervalTo
          __typename
        }
        __typename
      }
      products {
        __typename
        ... on ProductType {
          id
          name
          image
          description
          price
          subcategoryId
          hasModifiers
          availability {
            isAvailable
            nextAvailableDate
            nextAvailableTimeInterval {
              intervalFrom
              intervalTo
              __typename
            }
            __typename
          }
        }
        ... on MatrixProductType {
          id
          name
          image
          description
          price
          subcategoryId
          hasModifiers
        }
        ... on ComboProductType {
          id
          name
          image
          description
          price
          subcategoryId
          hasModifiers
        }
        ... on GiftCardProductType {
          id
          name
          image
          description
          price
          subcategoryId
        }
      }
    }
  }
`
